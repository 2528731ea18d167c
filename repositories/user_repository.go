package repositories

import (
	"context"

	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı profili işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository yeni bir UserRepository oluşturur.
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create kullanıcıyı kaydeder. UID boşsa üretilir, e-posta normalize edilir.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		user.UID = uuid.NewString()
	}
	user.Email = utils.NormalizeEmail(user.Email)

	if err := r.getDB(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		configslog.Log.Error("UserRepository.Create: DB error", zap.Error(err))
		return translateError(err)
	}
	return nil
}

// FindByUID kullanıcıyı UID ile bulur.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.getDB(ctx).Where("uid = ?", uid).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindByEmail kullanıcıyı normalize edilmiş e-posta ile bulur.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.getDB(ctx).Where("email = ?", utils.NormalizeEmail(email)).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

var _ IUserRepository = (*UserRepository)(nil)
