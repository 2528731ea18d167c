package configs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"cardify.app/configs/configslog"
	"cardify.app/pkg/certstore"

	"github.com/joho/godotenv"
)

// DatabaseConfig PostgreSQL bağlantı bilgileri.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

// DSN gorm postgres sürücüsü için bağlantı cümlesini üretir.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.TimeZone)
}

// AuthConfig kimlik doğrulama (JWT) ayarları.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// PassConfig Wallet pass üretimi için Apple kimlikleri ve davranış ayarları.
type PassConfig struct {
	TypeIdentifier         string
	TeamIdentifier         string
	OrganizationName       string
	DeterministicSignature bool
	RateLimitPerMinute     int
}

// AppConfig uygulamanın tüm çalışma zamanı ayarları.
type AppConfig struct {
	Env           string
	Port          string
	PublicBaseURL string
	DB            DatabaseConfig
	Auth          AuthConfig
	Certs         certstore.Config
	Pass          PassConfig
}

// IsDevelopment geliştirme ortamında mıyız?
func (c *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// MissingConfigError zorunlu ayarlardan eksik olanları listeler.
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return "eksik zorunlu yapılandırma: " + strings.Join(e.Keys, ", ")
}

// LoadConfig .env dosyasını (varsa) yükler ve ortam değişkenlerinden AppConfig üretir.
// Zorunlu bir değer eksikse hata döner; özellik sessizce devre dışı bırakılmaz.
func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		configslog.SLog.Warnf(".env dosyası okunamadı: %v", err)
	}
	return loadFromEnv(os.Getenv)
}

func loadFromEnv(getenv func(string) string) (*AppConfig, error) {
	var missing []string
	required := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	optional := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &AppConfig{
		Env:           optional("APP_ENV", "production"),
		Port:          optional("APP_PORT", "3000"),
		PublicBaseURL: strings.TrimRight(required("PUBLIC_BASE_URL"), "/"),
		DB: DatabaseConfig{
			Host:     required("DB_HOST"),
			Port:     optional("DB_PORT", "5432"),
			User:     required("DB_USERNAME"),
			Password: getenv("DB_PASSWORD"),
			Name:     required("DB_DATABASE"),
			SSLMode:  optional("DB_SSL_MODE", "disable"),
			TimeZone: optional("DB_TIMEZONE", "UTC"),
		},
		Auth: AuthConfig{
			JWTSecret: required("AUTH_JWT_SECRET"),
			Issuer:    optional("AUTH_ISSUER", "cardify"),
		},
		Certs: certstore.Config{
			Store:      optional("CERT_STORE", certstore.StoreFile),
			Passphrase: required("CERT_PASSWORD"),
			HTTPToken:  getenv("CERT_HTTP_TOKEN"),
		},
		Pass: PassConfig{
			TypeIdentifier:   required("PASS_TYPE_IDENTIFIER"),
			TeamIdentifier:   required("PASS_TEAM_IDENTIFIER"),
			OrganizationName: optional("PASS_ORGANIZATION_NAME", "Cardify"),
		},
	}

	switch cfg.Certs.Store {
	case certstore.StoreFile:
		cfg.Certs.Dir = required("CERT_DIR")
	case certstore.StoreHTTP:
		cfg.Certs.HTTPBaseURL = required("CERT_HTTP_BASE_URL")
	default:
		return nil, fmt.Errorf("geçersiz CERT_STORE değeri %q (file veya http olmalı)", cfg.Certs.Store)
	}

	if len(missing) > 0 {
		return nil, &MissingConfigError{Keys: missing}
	}

	ttl, err := time.ParseDuration(optional("AUTH_TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("geçersiz AUTH_TOKEN_TTL: %q", getenv("AUTH_TOKEN_TTL"))
	}
	cfg.Auth.TokenTTL = ttl

	if cfg.Pass.DeterministicSignature, err = strconv.ParseBool(optional("PASS_DETERMINISTIC_SIGNATURE", "false")); err != nil {
		return nil, fmt.Errorf("geçersiz PASS_DETERMINISTIC_SIGNATURE: %w", err)
	}
	if cfg.Pass.RateLimitPerMinute, err = strconv.Atoi(optional("PASS_RATE_LIMIT", "30")); err != nil || cfg.Pass.RateLimitPerMinute <= 0 {
		return nil, fmt.Errorf("geçersiz PASS_RATE_LIMIT: %q", getenv("PASS_RATE_LIMIT"))
	}

	if err := validatePublicBaseURL(cfg.PublicBaseURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validatePublicBaseURL barkod mesajı iso-8859-1 olarak beyan edildiği için
// taban URL yalnızca Latin-1 karakterler içermeli.
func validatePublicBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("geçersiz PUBLIC_BASE_URL: %q", raw)
	}
	for _, r := range raw {
		if r > 0xFF {
			return fmt.Errorf("PUBLIC_BASE_URL Latin-1 dışı karakter içeriyor: %q", raw)
		}
	}
	return nil
}
