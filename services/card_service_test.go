package services

import (
	"context"
	"testing"

	"cardify.app/database/databasetest"
	"cardify.app/models"
	"cardify.app/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCardService(t *testing.T) (ICardService, *CardResolver) {
	t.Helper()
	repo := repositories.NewCardRepository(databasetest.New(t))
	return NewCardService(repo), NewCardResolver(repo)
}

func janeInput() CardInput {
	return CardInput{
		FirstName: " Jane ",
		LastName:  "Doe",
		Title:     "CTO",
		Company:   "Acme",
		SocialLinks: []models.SocialLink{
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/jane"},
		},
		CardStyles: models.CardStyles{BackgroundColor: "bg-blue-700", TextColor: "text-white", IconColor: "text-white"},
	}
}

func TestCardService_CreateCard(t *testing.T) {
	svc, resolver := newCardService(t)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, " Jane@Example.com", janeInput())
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", card.Slug)
	assert.Equal(t, "Jane", card.FirstName)
	assert.Equal(t, "jane@example.com", card.OwnerEmail)
	assert.Equal(t, "jane@example.com", card.Email, "boş kart e-postası sahibin e-postasıyla doldurulur")

	second, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)
	assert.Equal(t, "jane-doe-1", second.Slug)

	got, err := resolver.Resolve(ctx, "jane-doe-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestCardService_CreateCardValidation(t *testing.T) {
	svc, _ := newCardService(t)
	ctx := context.Background()

	cases := map[string]func(*CardInput){
		"missing first name": func(in *CardInput) { in.FirstName = "  " },
		"bad email":          func(in *CardInput) { in.Email = "nope" },
		"bad profile image":  func(in *CardInput) { in.ProfileImage = "javascript:alert(1)" },
		"unknown template":   func(in *CardInput) { in.Template = "boardingPass" },
		"bad social url":     func(in *CardInput) { in.SocialLinks[0].URL = "ftp://x" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := janeInput()
			mutate(&in)
			_, err := svc.CreateCard(ctx, "jane@example.com", in)
			assert.ErrorIs(t, err, ErrCardInvalidInput)
		})
	}

	_, err := svc.CreateCard(ctx, "  ", janeInput())
	assert.ErrorIs(t, err, ErrCardForbidden)
}

func TestCardService_UpdateCardOwnership(t *testing.T) {
	svc, _ := newCardService(t)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	in := janeInput()
	in.Title = "CEO"
	_, err = svc.UpdateCard(ctx, card.ID, "mallory@example.com", in)
	assert.ErrorIs(t, err, ErrCardForbidden)

	// Sahibi olmayan geçersiz girdi gönderse de önce yetki kontrol edilir
	_, err = svc.UpdateCard(ctx, card.ID, "mallory@example.com", CardInput{})
	assert.ErrorIs(t, err, ErrCardForbidden)

	stored, err := svc.GetCardForOwner(ctx, card.ID, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "CTO", stored.Title)
	assert.Equal(t, card.FirstName, stored.FirstName)
	assert.Equal(t, "jane@example.com", stored.OwnerEmail)

	updated, err := svc.UpdateCard(ctx, card.ID, "JANE@example.com ", in)
	require.NoError(t, err)
	assert.Equal(t, "CEO", updated.Title)
	assert.Equal(t, "jane-doe", updated.Slug)

	_, err = svc.UpdateCard(ctx, uuid.NewString(), "jane@example.com", in)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_RenameCardSlug(t *testing.T) {
	svc, resolver := newCardService(t)
	ctx := context.Background()

	jane, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)
	other := janeInput()
	other.FirstName, other.LastName = "John", "Roe"
	john, err := svc.CreateCard(ctx, "john@example.com", other)
	require.NoError(t, err)

	_, err = svc.RenameCardSlug(ctx, john.ID, "john@example.com", "jane-doe")
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.RenameCardSlug(ctx, john.ID, "john@example.com", "Not A Slug")
	assert.ErrorIs(t, err, ErrCardInvalidInput)

	_, err = svc.RenameCardSlug(ctx, jane.ID, "john@example.com", "stolen")
	assert.ErrorIs(t, err, ErrCardForbidden)

	renamed, err := svc.RenameCardSlug(ctx, john.ID, "john@example.com", "johnny")
	require.NoError(t, err)
	assert.Equal(t, "johnny", renamed.Slug)

	_, err = resolver.Resolve(ctx, "john-roe")
	assert.ErrorIs(t, err, ErrCardNotFound)
	got, err := resolver.Resolve(ctx, "johnny")
	require.NoError(t, err)
	assert.Equal(t, john.ID, got.ID)
}

func TestCardService_DeleteCard(t *testing.T) {
	svc, resolver := newCardService(t)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCard(ctx, card.ID, "mallory@example.com"), ErrCardForbidden)

	require.NoError(t, svc.DeleteCard(ctx, card.ID, "jane@example.com"))
	require.NoError(t, svc.DeleteCard(ctx, card.ID, "jane@example.com"))
	require.NoError(t, svc.DeleteCard(ctx, card.ID, "mallory@example.com"))

	_, err = resolver.Resolve(ctx, card.Slug)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_ListCards(t *testing.T) {
	svc, _ := newCardService(t)
	ctx := context.Background()

	_, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)
	_, err = svc.CreateCard(ctx, "john@example.com", janeInput())
	require.NoError(t, err)

	cards, err := svc.ListCards(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestCardResolver(t *testing.T) {
	svc, resolver := newCardService(t)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	_, err = resolver.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrCardNotFound)
	_, err = resolver.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)

	byID, err := resolver.ResolveSlugOrID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", byID.Slug)

	bySlug, err := resolver.ResolveSlugOrID(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, card.ID, bySlug.ID)

	_, err = resolver.ResolveSlugOrID(ctx, "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestIsOwner(t *testing.T) {
	card := &models.Card{OwnerEmail: "jane@example.com"}
	assert.True(t, IsOwner(" JANE@Example.com ", card))
	assert.False(t, IsOwner("john@example.com", card))
	assert.False(t, IsOwner("", card))
	assert.False(t, IsOwner("jane@example.com", nil))
}
