package services

import (
	"context"
	"errors"

	"cardify.app/models"
	"cardify.app/repositories"
	"cardify.app/utils"
)

// ICardResolver public kart erişimi için arayüz.
type ICardResolver interface {
	Resolve(ctx context.Context, slug string) (*models.Card, error)
	ResolveSlugOrID(ctx context.Context, key string) (*models.Card, error)
}

// CardResolver slug (veya ID) ile kart bulur.
type CardResolver struct {
	repo repositories.ICardRepository
}

// NewCardResolver yeni bir CardResolver oluşturur.
func NewCardResolver(repo repositories.ICardRepository) *CardResolver {
	return &CardResolver{repo: repo}
}

// Resolve slug'a sahip kartı döndürür; yoksa ErrCardNotFound.
func (r *CardResolver) Resolve(ctx context.Context, slug string) (*models.Card, error) {
	if slug == "" {
		return nil, ErrCardNotFound
	}
	card, err := r.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, cardRepoError(err)
	}
	return card, nil
}

// ResolveSlugOrID önce slug, bulunamazsa ID ile arar. Eski pass bağlantıları kart
// ID'sini taşıyordu.
func (r *CardResolver) ResolveSlugOrID(ctx context.Context, key string) (*models.Card, error) {
	card, err := r.Resolve(ctx, key)
	if err == nil || !errors.Is(err, ErrCardNotFound) {
		return card, err
	}
	card, err = r.repo.FindByID(ctx, key)
	if err != nil {
		return nil, cardRepoError(err)
	}
	return card, nil
}

// IsOwner isteği yapanın e-postası (kırpılmış, küçük harf) kartın sahibiyle eşleşiyor mu?
func IsOwner(requesterEmail string, card *models.Card) bool {
	return card != nil && utils.SameEmail(requesterEmail, card.OwnerEmail)
}

var _ ICardResolver = (*CardResolver)(nil)
