package seeders

import (
	"context"
	"errors"
	"fmt"

	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/repositories"
	"cardify.app/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrSeedSkipped kayıt zaten mevcut olduğu için seed adımı atlandığında döner.
var ErrSeedSkipped = errors.New("seed atlandı: kayıt zaten mevcut")

// DemoAccount yerel geliştirme için oluşturulacak demo hesabın bilgileri.
type DemoAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Enabled e-posta ve parola verilmişse true döner.
func (d DemoAccount) Enabled() bool {
	return utils.NormalizeEmail(d.Email) != "" && d.Password != ""
}

// SeedDemoUser demo kullanıcıyı e-postasına göre bulur, yoksa oluşturur.
func SeedDemoUser(db *gorm.DB, demo DemoAccount) (*models.User, error) {
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	existing, err := users.FindByEmail(ctx, demo.Email)
	if err == nil {
		configslog.SLog.Debugf("Demo kullanıcı '%s' zaten mevcut, oluşturma atlanıyor.", existing.Email)
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("demo parolası hashlenemedi: %w", err)
	}

	user := &models.User{
		FirstName:    orDefault(demo.FirstName, "Demo"),
		LastName:     orDefault(demo.LastName, "User"),
		Email:        demo.Email,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	configslog.Log.Info("Demo kullanıcı oluşturuldu", zap.String("uid", user.UID), zap.String("email", user.Email))
	return user, nil
}

// SeedDemoCard kullanıcının hiç kartı yoksa örnek bir kart oluşturur.
func SeedDemoCard(db *gorm.DB, user *models.User) error {
	ctx := context.Background()
	cards := repositories.NewCardRepository(db)

	existing, err := cards.ListByOwner(ctx, user.Email)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrSeedSkipped
	}

	card := &models.Card{
		OwnerEmail: user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Title:      "Software Engineer",
		Company:    "Cardify",
		Phone:      user.Phone,
		Email:      user.Email,
		SocialLinks: []models.SocialLink{
			{Platform: "LinkedIn", URL: "https://www.linkedin.com/in/demo"},
			{Platform: "GitHub", URL: "https://github.com/demo"},
		},
		CardStyles: models.CardStyles{
			BackgroundColor: "bg-gradient-to-r from-blue-700 to-indigo-800",
			TextColor:       "text-white",
			IconColor:       "text-blue-100",
		},
	}
	if err := cards.Create(ctx, card); err != nil {
		return err
	}
	configslog.Log.Info("Demo kart oluşturuldu", zap.String("slug", card.Slug), zap.String("id", card.ID))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
