package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"cardify.app/database/databasetest"
	"cardify.app/models"
	"cardify.app/pkg/slug"
	"cardify.app/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCard(first, last, owner string) *models.Card {
	return &models.Card{
		OwnerEmail: owner,
		FirstName:  first,
		LastName:   last,
		Title:      "Engineer",
		SocialLinks: []models.SocialLink{
			{Platform: "LinkedIn", URL: "https://linkedin.com/in/" + first},
		},
		CardStyles: models.CardStyles{BackgroundColor: "bg-blue-700", TextColor: "text-white", IconColor: "text-white"},
	}
}

func TestCardRepository_CreateSequentialSuffixes(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	want := []string{"jane-doe", "jane-doe-1", "jane-doe-2"}
	for _, wantSlug := range want {
		card := newCard("Jane", "Doe", "jane@example.com")
		require.NoError(t, repo.Create(ctx, card))
		assert.Equal(t, wantSlug, card.Slug)
		assert.NotEmpty(t, card.ID)
		assert.False(t, card.CreatedAt.IsZero())
	}
}

func TestCardRepository_CreateNormalizesOwnerAndFallsBack(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	card := newCard("!!!", "", "  Jane@Example.COM ")
	require.NoError(t, repo.Create(ctx, card))
	assert.Equal(t, "card", card.Slug)
	assert.Equal(t, "jane@example.com", card.OwnerEmail)
}

func TestCardRepository_CreateCapsLongNames(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	first := strings.Repeat("a", 100)
	last := strings.Repeat("b", 10) + " " + strings.Repeat("c", 90)

	var slugs []string
	for i := 0; i < 2; i++ {
		card := newCard(first, last, "jane@example.com")
		require.NoError(t, repo.Create(ctx, card))
		assert.LessOrEqual(t, len(card.Slug), slug.MaxLength)
		assert.True(t, slug.Valid(card.Slug), card.Slug)
		slugs = append(slugs, card.Slug)
	}

	// Kesme noktasına denk gelen tire atılır
	base := first + "-" + strings.Repeat("b", 10)
	assert.Equal(t, []string{base, base + "-1"}, slugs)
	assert.Equal(t, base, repositories.BaseSlug(newCard(first, last, "")))
}

func TestCardRepository_CreateRetriesOnConcurrentInsert(t *testing.T) {
	db := databasetest.New(t).Session(&gorm.Session{SkipDefaultTransaction: true})

	// İlk insert'ten hemen önce başka bir isteğin aynı slug'ı aldığını taklit et
	stolen := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:steal_slug", func(tx *gorm.DB) {
		card, ok := tx.Statement.Dest.(*models.Card)
		if !ok || stolen {
			return
		}
		stolen = true
		now := time.Now().UTC()
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO cards (id, slug, owner_email, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			uuid.NewString(), card.Slug, "other@example.com", "Jane", "Doe", now, now,
		)
	}))

	repo := repositories.NewCardRepository(db)
	card := newCard("Jane", "Doe", "jane@example.com")
	require.NoError(t, repo.Create(context.Background(), card))
	assert.Equal(t, "jane-doe-1", card.Slug)

	var count int64
	require.NoError(t, db.Model(&models.Card{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCardRepository_FindBySlugAndID(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	card := newCard("Ada", "Lovelace", "ada@example.com")
	require.NoError(t, repo.Create(ctx, card))

	bySlug, err := repo.FindBySlug(ctx, "ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, card.ID, bySlug.ID)
	assert.Equal(t, card.SocialLinks, bySlug.SocialLinks)
	assert.Equal(t, card.CardStyles, bySlug.CardStyles)

	byID, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada-lovelace", byID.Slug)

	_, err = repo.FindBySlug(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCardRepository_UpdateKeepsImmutableFields(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	card := newCard("Ada", "Lovelace", "ada@example.com")
	require.NoError(t, repo.Create(ctx, card))

	edited := *card
	edited.Title = "Analyst"
	edited.Company = ""
	edited.Slug = "hijacked"
	edited.OwnerEmail = "mallory@example.com"
	edited.SocialLinks = nil
	require.NoError(t, repo.Update(ctx, &edited))

	got, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Analyst", got.Title)
	assert.Equal(t, "ada-lovelace", got.Slug)
	assert.Equal(t, "ada@example.com", got.OwnerEmail)
	assert.Empty(t, got.SocialLinks)
	assert.WithinDuration(t, card.CreatedAt, got.CreatedAt, time.Second)

	missing := newCard("No", "One", "x@example.com")
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Update(ctx, missing), repositories.ErrNotFound)
}

func TestCardRepository_UpdateSlug(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	a := newCard("Ada", "Lovelace", "ada@example.com")
	b := newCard("Alan", "Turing", "alan@example.com")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.ErrorIs(t, repo.UpdateSlug(ctx, b.ID, "ada-lovelace"), repositories.ErrSlugConflict)
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "alan-turing", got.Slug)

	// Kendi slug'ına yeniden adlandırma çakışma değildir
	assert.NoError(t, repo.UpdateSlug(ctx, a.ID, "ada-lovelace"))

	require.NoError(t, repo.UpdateSlug(ctx, b.ID, "enigma"))
	_, err = repo.FindBySlug(ctx, "alan-turing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	got, err = repo.FindBySlug(ctx, "enigma")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	assert.ErrorIs(t, repo.UpdateSlug(ctx, uuid.NewString(), "fresh"), repositories.ErrNotFound)
}

func TestCardRepository_DeleteIsIdempotent(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	card := newCard("Ada", "Lovelace", "ada@example.com")
	require.NoError(t, repo.Create(ctx, card))

	require.NoError(t, repo.Delete(ctx, card.ID))
	require.NoError(t, repo.Delete(ctx, card.ID))

	_, err := repo.FindByID(ctx, card.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	exists, err := repo.SlugExists(ctx, "ada-lovelace")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCardRepository_ListByOwner(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newCard("Ada", fmt.Sprint("L", i), "ada@example.com")))
	}
	require.NoError(t, repo.Create(ctx, newCard("Alan", "Turing", "alan@example.com")))

	cards, err := repo.ListByOwner(ctx, " ADA@example.com")
	require.NoError(t, err)
	assert.Len(t, cards, 3)
	for _, c := range cards {
		assert.Equal(t, "ada@example.com", c.OwnerEmail)
	}

	none, err := repo.ListByOwner(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCardRepository_CanceledContext(t *testing.T) {
	repo := repositories.NewCardRepository(databasetest.New(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindBySlug(ctx, "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, repositories.ErrStorageUnavailable)
}

func TestCardRepository_StorageUnavailable(t *testing.T) {
	db := databasetest.New(t)
	repo := repositories.NewCardRepository(db)
	require.NoError(t, db.Migrator().DropTable(&models.Card{}))

	_, err := repo.FindBySlug(context.Background(), "anything")
	assert.ErrorIs(t, err, repositories.ErrStorageUnavailable)
}
