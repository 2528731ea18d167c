package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"cardify.app/database/databasetest"
	"cardify.app/models"
	"cardify.app/pkg/certstore"
	"cardify.app/pkg/passkit"
	"cardify.app/pkg/passkit/passkittest"
	"cardify.app/repositories"

	"github.com/smallstep/pkcs7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	materials *certstore.Materials
	err       error
	calls     int
}

func (p *stubProvider) LoadMaterials(ctx context.Context) (*certstore.Materials, error) {
	p.calls++
	return p.materials, p.err
}

var testPassOptions = PassOptions{
	TypeIdentifier:   "pass.app.cardify.test",
	TeamIdentifier:   "TEAM123",
	OrganizationName: "Cardify",
	PublicBaseURL:    "https://cardify.test/",
}

type passFixture struct {
	svc      *PassService
	cards    ICardService
	provider *stubProvider
}

func newPassFixture(t *testing.T, opts PassOptions) *passFixture {
	t.Helper()
	repo := repositories.NewCardRepository(databasetest.New(t))
	provider := &stubProvider{materials: passkittest.Generate(t).StoreMaterials()}
	return &passFixture{
		svc:      NewPassService(NewCardResolver(repo), provider, opts),
		cards:    NewCardService(repo),
		provider: provider,
	}
}

func unzipPass(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	files := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		files[f.Name] = b
	}
	return files
}

func TestPassService_GeneratePass(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	ctx := context.Background()

	card, err := f.cards.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	pkg, err := f.svc.GeneratePass(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.apple.pkpass", pkg.ContentType())
	assert.Equal(t, "attachment; filename=businessCard.pkpass", pkg.ContentDisposition())

	files := unzipPass(t, pkg.Data)
	var pass passkit.Pass
	require.NoError(t, json.Unmarshal(files["pass.json"], &pass))
	assert.Equal(t, card.ID, pass.SerialNumber)
	assert.Equal(t, "TEAM123", pass.TeamIdentifier)
	assert.Equal(t, "Jane Doe / CTO", pass.Generic.PrimaryFields[0].Value)
	require.Len(t, pass.Barcodes, 1)
	assert.Equal(t, "https://cardify.test/card/jane-doe", pass.Barcodes[0].Message)
	assert.Equal(t, "iso-8859-1", pass.Barcodes[0].MessageEncoding)
	assert.Equal(t, passkit.BarcodeFormatQR, pass.Barcodes[0].Format)
	assert.Equal(t, "rgb(29, 78, 216)", pass.BackgroundColor)

	p7, err := pkcs7.Parse(files["signature"])
	require.NoError(t, err)
	p7.Content = files["manifest.json"]
	assert.NoError(t, p7.Verify())

	// ID ile istek de aynı slug'ı barkoda yazar
	byID, err := f.svc.GeneratePass(ctx, card.ID)
	require.NoError(t, err)
	var passByID passkit.Pass
	require.NoError(t, json.Unmarshal(unzipPass(t, byID.Data)["pass.json"], &passByID))
	assert.Equal(t, pass.Barcodes[0].Message, passByID.Barcodes[0].Message)
}

func TestPassService_NotFound(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	_, err := f.svc.GeneratePass(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.Zero(t, f.provider.calls)
}

func TestPassService_MissingRequiredFieldsSkipsCertificates(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	ctx := context.Background()

	in := janeInput()
	in.Title = "   "
	_, err := f.cards.CreateCard(ctx, "jane@example.com", in)
	require.NoError(t, err)

	pkg, err := f.svc.GeneratePass(ctx, "jane-doe")
	assert.Nil(t, pkg)
	assert.ErrorIs(t, err, ErrMissingRequiredFields)
	assert.Zero(t, f.provider.calls)
}

func TestPassService_CertificateLoadError(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	ctx := context.Background()
	f.provider.materials = nil
	f.provider.err = &certstore.CertificateLoadError{Artifact: certstore.ArtifactWWDR, Err: errors.New("yok")}

	_, err := f.cards.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	_, err = f.svc.GeneratePass(ctx, "jane-doe")
	assert.ErrorIs(t, err, ErrCertificateLoad)
	var loadErr *certstore.CertificateLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, certstore.ArtifactWWDR, loadErr.Artifact)
}

func TestPassService_SigningFailure(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	card := &models.Card{BaseModel: models.BaseModel{ID: "card-1"}, Slug: "jane-doe", FirstName: "Jane", LastName: "Doe", Title: "CTO"}

	m := passkittest.Generate(t).StoreMaterials()
	m.Passphrase = "wrong"
	pkg, err := f.svc.BuildPass(card, m)
	assert.Nil(t, pkg)
	assert.ErrorIs(t, err, ErrSigningFailure)
	assert.NotContains(t, err.Error(), "wrong")
}

func TestPassService_NilMaterials(t *testing.T) {
	f := newPassFixture(t, testPassOptions)
	card := &models.Card{BaseModel: models.BaseModel{ID: "card-1"}, Slug: "jane-doe", FirstName: "Jane", LastName: "Doe", Title: "CTO"}

	pkg, err := f.svc.BuildPass(card, nil)
	assert.Nil(t, pkg)
	assert.ErrorIs(t, err, ErrCertificateLoad)

	ctx := context.Background()
	_, err = f.cards.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)
	f.provider.materials = nil

	pkg, err = f.svc.GeneratePass(ctx, "jane-doe")
	assert.Nil(t, pkg)
	assert.ErrorIs(t, err, ErrCertificateLoad)
}

func TestPassService_DeterministicOutput(t *testing.T) {
	opts := testPassOptions
	opts.Deterministic = true
	f := newPassFixture(t, opts)
	ctx := context.Background()

	_, err := f.cards.CreateCard(ctx, "jane@example.com", janeInput())
	require.NoError(t, err)

	a, err := f.svc.GeneratePass(ctx, "jane-doe")
	require.NoError(t, err)
	b, err := f.svc.GeneratePass(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}

func TestPassService_PassForCard(t *testing.T) {
	svc := NewPassService(nil, nil, testPassOptions)
	base := models.Card{BaseModel: models.BaseModel{ID: "card-1"}, Slug: "jane-doe", FirstName: "Jane", LastName: "Doe", Title: "CTO"}

	t.Run("placeholders", func(t *testing.T) {
		card := base
		pass, tpl, err := svc.PassForCard(&card)
		require.NoError(t, err)
		assert.Equal(t, DefaultPassTemplate, tpl.Name)
		assert.Equal(t, []passkit.Field{
			{Key: "company", Label: "Company", Value: "Not provided"},
			{Key: "email", Label: "Email", Value: "Not provided"},
		}, pass.Generic.SecondaryFields)
		assert.Equal(t, []passkit.Field{{Key: "phone", Label: "Phone", Value: "Not provided"}}, pass.Generic.AuxiliaryFields)
		require.Len(t, pass.Generic.BackFields, 1)
		assert.Equal(t, "cardUrl", pass.Generic.BackFields[0].Key)
	})

	t.Run("linkedin preferred over first link", func(t *testing.T) {
		card := base
		card.SocialLinks = []models.SocialLink{
			{Platform: "GitHub", URL: ""},
			{Platform: "Twitter", URL: "https://twitter.com/jane"},
			{Platform: "linkedin", URL: "https://linkedin.com/in/jane"},
		}
		pass, _, err := svc.PassForCard(&card)
		require.NoError(t, err)
		assert.Equal(t, passkit.Field{Key: "linkedin", Label: "LinkedIn", Value: "https://linkedin.com/in/jane"}, pass.Generic.BackFields[0])
	})

	t.Run("first complete link as fallback", func(t *testing.T) {
		card := base
		card.SocialLinks = []models.SocialLink{
			{Platform: "LinkedIn", URL: ""},
			{Platform: "Twitter", URL: "https://twitter.com/jane"},
		}
		pass, _, err := svc.PassForCard(&card)
		require.NoError(t, err)
		assert.Equal(t, passkit.Field{Key: "linkedin", Label: "Twitter", Value: "https://twitter.com/jane"}, pass.Generic.BackFields[0])
	})

	t.Run("minimal template", func(t *testing.T) {
		card := base
		card.Template = "minimal"
		card.Company = "Acme"
		pass, _, err := svc.PassForCard(&card)
		require.NoError(t, err)
		assert.Empty(t, pass.Generic.AuxiliaryFields)
		assert.Empty(t, pass.Generic.BackFields)
		assert.Equal(t, "Acme", pass.Generic.SecondaryFields[0].Value)
		assert.Equal(t, "rgb(255, 255, 255)", pass.BackgroundColor)
	})

	t.Run("unknown template", func(t *testing.T) {
		card := base
		card.Template = "boardingPass"
		_, _, err := svc.PassForCard(&card)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("missing required fields", func(t *testing.T) {
		for _, mutate := range []func(*models.Card){
			func(c *models.Card) { c.FirstName = "" },
			func(c *models.Card) { c.LastName = " " },
			func(c *models.Card) { c.Title = "" },
		} {
			card := base
			mutate(&card)
			_, _, err := svc.PassForCard(&card)
			assert.ErrorIs(t, err, ErrMissingRequiredFields)
		}
	})

	t.Run("style colors", func(t *testing.T) {
		card := base
		card.CardStyles = models.CardStyles{
			BackgroundColor: "bg-gradient-to-r from-purple-600 to-indigo-700",
			TextColor:       "text-gray-900",
			IconColor:       "unknown",
		}
		pass, _, err := svc.PassForCard(&card)
		require.NoError(t, err)
		assert.Equal(t, "rgb(147, 51, 234)", pass.BackgroundColor)
		assert.Equal(t, "rgb(17, 24, 39)", pass.ForegroundColor)
		assert.Equal(t, "rgb(219, 234, 254)", pass.LabelColor)
	})
}

func TestPassTemplateNames(t *testing.T) {
	assert.Equal(t, []string{"businessCard", "minimal"}, PassTemplateNames())
}
