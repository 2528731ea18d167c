package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/pkg/slug"
	"cardify.app/repositories"
	"cardify.app/utils"

	"go.uber.org/zap"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound     CardServiceError = "kartvizit bulunamadı"
	ErrCardForbidden    CardServiceError = "bu işlem için yetkiniz yok"
	ErrCardInvalidInput CardServiceError = "geçersiz girdi verisi"
	ErrSlugTaken        CardServiceError = "slug başka bir kartvizit tarafından kullanılıyor"
)

const maxSocialLinks = 20

// CardInput kartvizit oluşturma ve düzenleme formundan gelen alanlar.
type CardInput struct {
	FirstName    string              `json:"firstName"`
	LastName     string              `json:"lastName"`
	Title        string              `json:"title"`
	Company      string              `json:"company"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email"`
	SocialLinks  []models.SocialLink `json:"socialLinks"`
	CardStyles   models.CardStyles   `json:"cardStyles"`
	ProfileImage string              `json:"profileImage"`
	Template     string              `json:"template"`
}

// Normalize baştaki/sondaki boşlukları temizler.
func (in *CardInput) Normalize() {
	for _, f := range []*string{
		&in.FirstName, &in.LastName, &in.Title, &in.Company, &in.Phone, &in.Email,
		&in.ProfileImage, &in.Template,
		&in.CardStyles.BackgroundColor, &in.CardStyles.TextColor, &in.CardStyles.IconColor,
	} {
		*f = strings.TrimSpace(*f)
	}
	for i := range in.SocialLinks {
		in.SocialLinks[i].Platform = strings.TrimSpace(in.SocialLinks[i].Platform)
		in.SocialLinks[i].URL = strings.TrimSpace(in.SocialLinks[i].URL)
	}
}

// Validate temel validasyonları yapar. Normalize'dan sonra çağrılmalı.
func (in *CardInput) Validate() error {
	if in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("%w: isim ve soyisim zorunludur", ErrCardInvalidInput)
	}
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"firstName", in.FirstName, 100},
		{"lastName", in.LastName, 100},
		{"title", in.Title, 100},
		{"company", in.Company, 150},
		{"phone", in.Phone, 30},
		{"email", in.Email, 254},
		{"profileImage", in.ProfileImage, 500},
		{"backgroundColor", in.CardStyles.BackgroundColor, 50},
		{"textColor", in.CardStyles.TextColor, 50},
		{"iconColor", in.CardStyles.IconColor, 50},
	}
	for _, l := range lengths {
		if utf8.RuneCountInString(l.value) > l.max {
			return fmt.Errorf("%w: %s en fazla %d karakter olabilir", ErrCardInvalidInput, l.name, l.max)
		}
	}
	if in.Email != "" {
		if err := utils.ValidateEmail(in.Email); err != nil {
			return fmt.Errorf("%w: email", ErrCardInvalidInput)
		}
	}
	if in.ProfileImage != "" && !isHTTPURL(in.ProfileImage) {
		return fmt.Errorf("%w: profileImage http(s) adresi olmalı", ErrCardInvalidInput)
	}
	if in.Template != "" {
		if _, err := LookupPassTemplate(in.Template); err != nil {
			return fmt.Errorf("%w: bilinmeyen şablon %q", ErrCardInvalidInput, in.Template)
		}
	}
	if len(in.SocialLinks) > maxSocialLinks {
		return fmt.Errorf("%w: en fazla %d sosyal bağlantı eklenebilir", ErrCardInvalidInput, maxSocialLinks)
	}
	for _, l := range in.SocialLinks {
		if l.URL != "" && !isHTTPURL(l.URL) {
			return fmt.Errorf("%w: sosyal bağlantı http(s) adresi olmalı", ErrCardInvalidInput)
		}
	}
	return nil
}

func (in *CardInput) applyTo(card *models.Card) {
	card.FirstName = in.FirstName
	card.LastName = in.LastName
	card.Title = in.Title
	card.Company = in.Company
	card.Phone = in.Phone
	card.Email = in.Email
	card.SocialLinks = in.SocialLinks
	card.CardStyles = in.CardStyles
	card.ProfileImage = in.ProfileImage
	card.Template = in.Template
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ICardService kartvizit yazma işlemleri için arayüz. Tüm yazmalar sahiplik kontrolü yapar.
type ICardService interface {
	CreateCard(ctx context.Context, requesterEmail string, input CardInput) (*models.Card, error)
	GetCardForOwner(ctx context.Context, id, requesterEmail string) (*models.Card, error)
	ListCards(ctx context.Context, requesterEmail string) ([]models.Card, error)
	UpdateCard(ctx context.Context, id, requesterEmail string, input CardInput) (*models.Card, error)
	RenameCardSlug(ctx context.Context, id, requesterEmail, newSlug string) (*models.Card, error)
	DeleteCard(ctx context.Context, id, requesterEmail string) error
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo repositories.ICardRepository
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService(repo repositories.ICardRepository) ICardService {
	return &CardService{repo: repo}
}

// CreateCard isteği yapanın adına yeni bir kart oluşturur. Kart e-postası boşsa
// sahibin e-postası kullanılır.
func (s *CardService) CreateCard(ctx context.Context, requesterEmail string, input CardInput) (*models.Card, error) {
	owner := utils.NormalizeEmail(requesterEmail)
	if owner == "" {
		return nil, ErrCardForbidden
	}
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card := &models.Card{OwnerEmail: owner}
	input.applyTo(card)
	if card.Email == "" {
		card.Email = owner
	}

	if err := s.repo.Create(ctx, card); err != nil {
		configslog.Log.Error("Kartvizit oluşturulamadı", zap.String("owner", owner), zap.Error(err))
		return nil, cardRepoError(err)
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: ID %s, slug %s", card.ID, card.Slug)
	return card, nil
}

// getOwnedCard kartı bulur ve sahiplik kontrolü yapar.
func (s *CardService) getOwnedCard(ctx context.Context, id, requesterEmail string) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, cardRepoError(err)
	}
	if !IsOwner(requesterEmail, card) {
		configslog.Log.Warn("Yetkisiz kartvizit erişimi engellendi",
			zap.String("card_id", id),
			zap.String("requester", utils.NormalizeEmail(requesterEmail)),
		)
		return nil, ErrCardForbidden
	}
	return card, nil
}

// GetCardForOwner düzenleme için kartı döndürür.
func (s *CardService) GetCardForOwner(ctx context.Context, id, requesterEmail string) (*models.Card, error) {
	return s.getOwnedCard(ctx, id, requesterEmail)
}

// ListCards isteği yapanın kartlarını listeler.
func (s *CardService) ListCards(ctx context.Context, requesterEmail string) ([]models.Card, error) {
	owner := utils.NormalizeEmail(requesterEmail)
	if owner == "" {
		return nil, ErrCardForbidden
	}
	cards, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, cardRepoError(err)
	}
	return cards, nil
}

// UpdateCard düzenlenebilir alanları günceller; slug ve sahip değişmez.
func (s *CardService) UpdateCard(ctx context.Context, id, requesterEmail string, input CardInput) (*models.Card, error) {
	card, err := s.getOwnedCard(ctx, id, requesterEmail)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input.applyTo(card)
	if card.Email == "" {
		card.Email = card.OwnerEmail
	}

	if err := s.repo.Update(ctx, card); err != nil {
		configslog.Log.Error("Kartvizit güncellenemedi", zap.String("card_id", id), zap.Error(err))
		return nil, cardRepoError(err)
	}
	return card, nil
}

// RenameCardSlug kartın slug'ını değiştirir. Eski paylaşım linkleri ve pass barkodları
// geçersiz kalır.
func (s *CardService) RenameCardSlug(ctx context.Context, id, requesterEmail, newSlug string) (*models.Card, error) {
	newSlug = strings.TrimSpace(newSlug)
	if !slug.Valid(newSlug) {
		return nil, fmt.Errorf("%w: slug sadece küçük harf, rakam, '-' ve '_' içerebilir", ErrCardInvalidInput)
	}

	card, err := s.getOwnedCard(ctx, id, requesterEmail)
	if err != nil {
		return nil, err
	}
	if card.Slug == newSlug {
		return card, nil
	}

	if err := s.repo.UpdateSlug(ctx, id, newSlug); err != nil {
		if !errors.Is(err, repositories.ErrSlugConflict) {
			configslog.Log.Error("Slug güncellenemedi", zap.String("card_id", id), zap.Error(err))
		}
		return nil, cardRepoError(err)
	}

	configslog.SLog.Infof("Kartvizit slug'ı değişti: %s -> %s (ID %s)", card.Slug, newSlug, id)
	card.Slug = newSlug
	return card, nil
}

// DeleteCard kartı siler. Kart zaten yoksa başarılı sayılır.
func (s *CardService) DeleteCard(ctx context.Context, id, requesterEmail string) error {
	_, err := s.getOwnedCard(ctx, id, requesterEmail)
	if errors.Is(err, ErrCardNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		configslog.Log.Error("Kartvizit silinemedi", zap.String("card_id", id), zap.Error(err))
		return cardRepoError(err)
	}
	configslog.SLog.Infof("Kartvizit silindi: ID %s", id)
	return nil
}

var _ ICardService = (*CardService)(nil)
