package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardify.app/configs"
	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/repositories"
	"cardify.app/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError kimlik doğrulama hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrEmailTaken         AuthServiceError = "bu e-posta adresiyle kayıtlı bir hesap var"
	ErrAuthInvalidInput   AuthServiceError = "geçersiz kayıt bilgisi"
	ErrInvalidToken       AuthServiceError = "geçersiz veya süresi dolmuş oturum"
	ErrUserNotFound       AuthServiceError = "kullanıcı bulunamadı"
)

const minPasswordLength = 8

// RegisterInput kayıt formundan gelen alanlar.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Claims JWT içindeki kimlik bilgileri. Subject kullanıcının UID'idir.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IAuthService kayıt, giriş ve token doğrulama için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ParseToken(token string) (*Claims, error)
	GetProfile(ctx context.Context, uid string) (*models.User, error)
	TokenTTL() time.Duration
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	users      repositories.IUserRepository
	secret     []byte
	issuer     string
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewAuthService yeni bir AuthService oluşturur.
func NewAuthService(users repositories.IUserRepository, cfg configs.AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// WithBcryptCost bcrypt maliyetini değiştirir (testlerde bcrypt.MinCost).
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

// TokenTTL üretilen token'ların geçerlilik süresi.
func (s *AuthService) TokenTTL() time.Duration { return s.ttl }

// Register yeni bir kullanıcı profili oluşturur.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := utils.NormalizeEmail(input.Email)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: e-posta", ErrAuthInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: şifre en az %d karakter olmalı", ErrAuthInvalidInput, minPasswordLength)
	}
	// bcrypt 72 bayttan uzun girdileri reddeder
	if len(input.Password) > 72 {
		return nil, fmt.Errorf("%w: şifre en fazla 72 bayt olabilir", ErrAuthInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		configslog.Log.Error("Şifre hash'lenemedi", zap.Error(err))
		return nil, fmt.Errorf("şifre hash'lenemedi: %w", err)
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, storageError(err)
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydoldu: %s", user.UID)
	return user, nil
}

// Login e-posta ve şifreyi doğrular, başarılıysa imzalı bir token döndürür.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, storageError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		configslog.Log.Warn("Hatalı giriş denemesi", zap.String("uid", user.UID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		configslog.Log.Error("Token imzalanamadı", zap.String("uid", user.UID), zap.Error(err))
		return "", nil, fmt.Errorf("token imzalanamadı: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.UID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken token'ın imzasını, yayıncısını ve süresini doğrular.
func (s *AuthService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || utils.NormalizeEmail(claims.Email) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetProfile kart formlarını önceden doldurmak için kullanıcı profilini döndürür.
func (s *AuthService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError(err)
	}
	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
