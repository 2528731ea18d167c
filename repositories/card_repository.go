package repositories

import (
	"context"
	"errors"
	"strings"

	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/pkg/slug"
	"cardify.app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// maxCreateAttempts eşzamanlı oluşturmalarda benzersiz indekse takılan insert denemelerinin sınırı.
	maxCreateAttempts = 100
	// maxSlugProbes tek bir taban için denenecek sonek sayısının sınırı.
	maxSlugProbes = 10000
	// fallbackSlugBase isimden slug türetilemediğinde kullanılır.
	fallbackSlugBase = "card"
)

// maxBaseSlugLength en büyük "-n" soneki eklendiğinde bile slug'ın slug.MaxLength
// sınırını aşmamasını sağlar.
var maxBaseSlugLength = slug.MaxLength - len(slug.WithSuffix("", maxCreateAttempts*maxSlugProbes))

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id string) (*models.Card, error)
	FindBySlug(ctx context.Context, slug string) (*models.Card, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, card *models.Card) error
	UpdateSlug(ctx context.Context, id, newSlug string) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Card, error)
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	db *gorm.DB
}

// NewCardRepository verilen bağlantı (veya transaction) ile bir CardRepository oluşturur.
func NewCardRepository(db *gorm.DB) ICardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// BaseSlug kartın isminden türetilen, sonek eklenmemiş slug.
func BaseSlug(card *models.Card) string {
	base := slug.Slugify(card.FirstName + "-" + card.LastName)
	if len(base) > maxBaseSlugLength {
		base = strings.TrimRight(base[:maxBaseSlugLength], "-_")
	}
	if strings.Trim(base, "-_") == "" {
		return fallbackSlugBase
	}
	return base
}

// Create kartı benzersiz bir slug ile kaydeder: base, base-1, base-2 ... sırayla
// denenir. Kontrol ile yazma arasında başka bir istek aynı slug'ı alırsa benzersiz
// indeks ihlali yakalanır ve bir sonraki sonekten devam edilir.
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	base := BaseSlug(card)
	card.OwnerEmail = utils.NormalizeEmail(card.OwnerEmail)

	next := 0
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		candidate, n, err := r.nextFreeSlug(ctx, base, next)
		if err != nil {
			return err
		}

		card.Slug = candidate
		err = r.getDB(ctx).Create(card).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKeyError(err) {
			card.Slug = ""
			configslog.Log.Error("CardRepository.Create: DB error", zap.String("slug", candidate), zap.Error(err))
			return translateError(err)
		}

		configslog.Log.Warn("Slug çakışması, sonraki sonek deneniyor", zap.String("slug", candidate), zap.Int("attempt", attempt+1))
		next = n + 1
	}

	card.Slug = ""
	return ErrSlugConflict
}

// nextFreeSlug from sonekinden başlayarak kullanılmayan ilk adayı ve sonekini döndürür.
// 0 soneki sonek eklenmemiş tabandır.
func (r *CardRepository) nextFreeSlug(ctx context.Context, base string, from int) (string, int, error) {
	for n := from; n < from+maxSlugProbes; n++ {
		candidate := base
		if n > 0 {
			candidate = slug.WithSuffix(base, n)
		}
		exists, err := r.SlugExists(ctx, candidate)
		if err != nil {
			return "", 0, err
		}
		if !exists {
			return candidate, n, nil
		}
	}
	return "", 0, ErrSlugConflict
}

// SlugExists slug herhangi bir kart tarafından kullanılıyor mu?
func (r *CardRepository) SlugExists(ctx context.Context, s string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&models.Card{}).Where("slug = ?", s).Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// FindByID kartı ID ile bulur.
func (r *CardRepository) FindByID(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	if err := r.getDB(ctx).Where("id = ?", id).Take(&card).Error; err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

// FindBySlug kartı slug ile bulur.
func (r *CardRepository) FindBySlug(ctx context.Context, s string) (*models.Card, error) {
	var card models.Card
	if err := r.getDB(ctx).Where("slug = ?", s).Take(&card).Error; err != nil {
		return nil, translateError(err)
	}
	return &card, nil
}

// Update düzenlenebilir alanları kaydeder. id, slug, owner_email ve created_at
// bu yoldan asla değişmez.
func (r *CardRepository) Update(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		return ErrNotFound
	}
	result := r.getDB(ctx).Model(card).
		Select("*").
		Omit("id", "slug", "owner_email", "created_at").
		Updates(card)
	if result.Error != nil {
		configslog.Log.Error("CardRepository.Update: DB error", zap.String("card_id", card.ID), zap.Error(result.Error))
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSlug slug'ı değiştirir. Slug başka bir karta aitse yazma yapılmaz.
func (r *CardRepository) UpdateSlug(ctx context.Context, id, newSlug string) error {
	var other models.Card
	err := r.getDB(ctx).Select("id").Where("slug = ?", newSlug).Take(&other).Error
	switch {
	case err == nil && other.ID != id:
		return ErrSlugConflict
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return translateError(err)
	}

	result := r.getDB(ctx).Model(&models.Card{}).Where("id = ?", id).Update("slug", newSlug)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return ErrSlugConflict
		}
		configslog.Log.Error("CardRepository.UpdateSlug: DB error", zap.String("card_id", id), zap.Error(result.Error))
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kartı kalıcı olarak siler. Kayıt yoksa da başarılı sayılır.
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	if err := r.getDB(ctx).Where("id = ?", id).Delete(&models.Card{}).Error; err != nil {
		configslog.Log.Error("CardRepository.Delete: DB error", zap.String("card_id", id), zap.Error(err))
		return translateError(err)
	}
	return nil
}

// ListByOwner kullanıcının kartlarını döndürür. Sıralama created_at desc'tir ancak
// çağıranlar buna güvenmemeli.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Card, error) {
	cards := []models.Card{}
	err := r.getDB(ctx).
		Where("owner_email = ?", utils.NormalizeEmail(ownerEmail)).
		Order("created_at desc").
		Find(&cards).Error
	if err != nil {
		return nil, translateError(err)
	}
	return cards, nil
}

var _ ICardRepository = (*CardRepository)(nil)
