package routes

import (
	"cardify.app/configs"
	"cardify.app/pkg/certstore"
	"cardify.app/repositories"
	"cardify.app/services"

	"gorm.io/gorm"
)

// Dependencies rotaların ihtiyaç duyduğu servisler.
type Dependencies struct {
	DB            *gorm.DB
	Resolver      services.ICardResolver
	CardService   services.ICardService
	PassService   services.IPassService
	QRService     services.IQRService
	AuthService   services.IAuthService
	PublicBaseURL string
	PassRateLimit int
}

// NewDependencies repository ve servisleri yapılandırmaya göre oluşturur.
func NewDependencies(db *gorm.DB, cfg *configs.AppConfig, certs certstore.Provider) *Dependencies {
	cardRepo := repositories.NewCardRepository(db)
	userRepo := repositories.NewUserRepository(db)
	resolver := services.NewCardResolver(cardRepo)

	return &Dependencies{
		DB:          db,
		Resolver:    resolver,
		CardService: services.NewCardService(cardRepo),
		PassService: services.NewPassService(resolver, certs, services.PassOptions{
			TypeIdentifier:   cfg.Pass.TypeIdentifier,
			TeamIdentifier:   cfg.Pass.TeamIdentifier,
			OrganizationName: cfg.Pass.OrganizationName,
			PublicBaseURL:    cfg.PublicBaseURL,
			Deterministic:    cfg.Pass.DeterministicSignature,
		}),
		QRService:     services.NewQRService(cfg.PublicBaseURL),
		AuthService:   services.NewAuthService(userRepo, cfg.Auth),
		PublicBaseURL: cfg.PublicBaseURL,
		PassRateLimit: cfg.Pass.RateLimitPerMinute,
	}
}
