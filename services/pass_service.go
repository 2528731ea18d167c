package services

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"cardify.app/configs/configslog"
	"cardify.app/models"
	"cardify.app/pkg/certstore"
	"cardify.app/pkg/passkit"

	"go.uber.org/zap"
)

// PassServiceError pass üretimi sırasında oluşan hatalar.
type PassServiceError string

func (e PassServiceError) Error() string { return string(e) }

const (
	ErrMissingRequiredFields PassServiceError = "pass için ad, soyad ve unvan zorunludur"
	ErrTemplateNotFound      PassServiceError = "pass şablonu bulunamadı"
	ErrCertificateLoad       PassServiceError = "sertifika materyalleri yüklenemedi"
	ErrSigningFailure        PassServiceError = "pass imzalanamadı"
	ErrPassBuildFailed       PassServiceError = "pass oluşturulamadı"
)

const (
	notProvided    = "Not provided"
	barcodeAltText = "Scan to view the business card"
)

// PassOptions pass üretimi için Apple kimlikleri ve davranış ayarları.
type PassOptions struct {
	TypeIdentifier   string
	TeamIdentifier   string
	OrganizationName string
	PublicBaseURL    string
	// Deterministic imzayı signing-time özniteliği olmadan üretir; aynı kart aynı baytları verir.
	Deterministic bool
}

// IPassService Wallet pass üretimi için arayüz.
type IPassService interface {
	GeneratePass(ctx context.Context, slugOrID string) (*passkit.Package, error)
	BuildPass(card *models.Card, materials *certstore.Materials) (*passkit.Package, error)
}

// PassService kartı çözer, sertifikaları yükler ve imzalı .pkpass üretir.
type PassService struct {
	resolver ICardResolver
	certs    certstore.Provider
	opts     PassOptions
}

// NewPassService yeni bir PassService oluşturur.
func NewPassService(resolver ICardResolver, certs certstore.Provider, opts PassOptions) *PassService {
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &PassService{resolver: resolver, certs: certs, opts: opts}
}

// GeneratePass slug (veya ID) ile kartı bulur ve imzalı pass paketini döndürür.
// Eksik alan kontrolü sertifikalar yüklenmeden önce yapılır.
func (s *PassService) GeneratePass(ctx context.Context, slugOrID string) (*passkit.Package, error) {
	card, err := s.resolver.ResolveSlugOrID(ctx, slugOrID)
	if err != nil {
		return nil, err
	}
	if err := validatePassFields(card); err != nil {
		return nil, err
	}
	if _, err := LookupPassTemplate(card.Template); err != nil {
		return nil, err
	}

	materials, err := s.certs.LoadMaterials(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		configslog.Log.Error("Sertifika materyalleri yüklenemedi", zap.String("card_id", card.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCertificateLoad, err)
	}

	return s.BuildPass(card, materials)
}

// BuildPass kartı pass'e eşler, imzalar ve paketler. Herhangi bir adım başarısız
// olursa kısmi çıktı dönülmez.
func (s *PassService) BuildPass(card *models.Card, materials *certstore.Materials) (*passkit.Package, error) {
	pass, tpl, err := s.PassForCard(card)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		return nil, fmt.Errorf("%w: sertifika materyali verilmedi", ErrCertificateLoad)
	}

	signer, err := passkit.NewSigner(materials.SignerCert, materials.SignerKey, materials.WWDR, materials.Passphrase)
	if err != nil {
		configslog.Log.Error("Pass imzalayıcı oluşturulamadı", zap.String("card_id", card.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSigningFailure, err)
	}
	if s.opts.Deterministic {
		signer = signer.WithoutSigningAttributes()
	}

	bg := tpl.Background
	if c, ok := passkit.ParseColor(card.CardStyles.BackgroundColor); ok {
		bg = c
	}
	icons, err := passkit.Icons(bg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPassBuildFailed, err)
	}

	pkg, err := passkit.Assemble(pass, icons, signer, passkit.DefaultFilename)
	if err != nil {
		configslog.Log.Error("Pass paketlenemedi", zap.String("card_id", card.ID), zap.Error(err))
		if errors.Is(err, passkit.ErrSigning) {
			return nil, fmt.Errorf("%w: %w", ErrSigningFailure, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrPassBuildFailed, err)
	}

	configslog.Log.Info("Pass üretildi",
		zap.String("card_id", card.ID),
		zap.String("slug", card.Slug),
		zap.String("template", tpl.Name),
		zap.Int("bytes", len(pkg.Data)),
	)
	return pkg, nil
}

// PassForCard kartı imzalanmamış pass modeline eşler.
func (s *PassService) PassForCard(card *models.Card) (*passkit.Pass, PassTemplate, error) {
	if err := validatePassFields(card); err != nil {
		return nil, PassTemplate{}, err
	}
	tpl, err := LookupPassTemplate(card.Template)
	if err != nil {
		return nil, PassTemplate{}, err
	}

	firstName := strings.TrimSpace(card.FirstName)
	lastName := strings.TrimSpace(card.LastName)
	title := strings.TrimSpace(card.Title)

	structure := &passkit.Structure{
		PrimaryFields: []passkit.Field{{
			Key:   "nameTitle",
			Label: "Name / Title",
			Value: fmt.Sprintf("%s %s / %s", firstName, lastName, title),
		}},
		SecondaryFields: []passkit.Field{
			{Key: "company", Label: "Company", Value: orNotProvided(card.Company)},
			{Key: "email", Label: "Email", Value: orNotProvided(card.Email)},
		},
	}
	if tpl.WithAuxiliary {
		structure.AuxiliaryFields = []passkit.Field{
			{Key: "phone", Label: "Phone", Value: orNotProvided(card.Phone)},
		}
	}

	cardURL := CanonicalCardURL(s.opts.PublicBaseURL, card.Slug)
	if tpl.WithBack {
		if link, ok := backLink(card); ok {
			label := link.Platform
			if strings.EqualFold(label, "linkedin") {
				label = "LinkedIn"
			}
			structure.BackFields = append(structure.BackFields, passkit.Field{Key: "linkedin", Label: label, Value: link.URL})
		}
		structure.BackFields = append(structure.BackFields, passkit.Field{Key: "cardUrl", Label: "Card", Value: cardURL})
	}

	barcode := passkit.Barcode{
		Format:          passkit.BarcodeFormatQR,
		Message:         cardURL,
		MessageEncoding: passkit.EncodingLatin1,
		AltText:         barcodeAltText,
	}

	pass := &passkit.Pass{
		FormatVersion:      1,
		PassTypeIdentifier: s.opts.TypeIdentifier,
		SerialNumber:       card.ID,
		TeamIdentifier:     s.opts.TeamIdentifier,
		OrganizationName:   s.opts.OrganizationName,
		Description:        tpl.Description,
		LogoText:           card.FullName(),
		ForegroundColor:    passkit.FormatRGB(styleColor(card.CardStyles.TextColor, tpl.Foreground)),
		BackgroundColor:    passkit.FormatRGB(styleColor(card.CardStyles.BackgroundColor, tpl.Background)),
		LabelColor:         passkit.FormatRGB(styleColor(card.CardStyles.IconColor, tpl.Label)),
		Barcode:            &barcode,
		Barcodes:           []passkit.Barcode{barcode},
		Generic:            structure,
	}
	return pass, tpl, nil
}

// validatePassFields ad, soyad ve unvanın boş olmadığını kontrol eder.
func validatePassFields(card *models.Card) error {
	if strings.TrimSpace(card.FirstName) == "" ||
		strings.TrimSpace(card.LastName) == "" ||
		strings.TrimSpace(card.Title) == "" {
		return ErrMissingRequiredFields
	}
	return nil
}

// backLink LinkedIn bağlantısını, yoksa ilk eksiksiz sosyal bağlantıyı seçer.
func backLink(card *models.Card) (models.SocialLink, bool) {
	links := card.CompleteSocialLinks()
	for _, l := range links {
		if strings.EqualFold(strings.TrimSpace(l.Platform), "linkedin") {
			return l, true
		}
	}
	if len(links) > 0 {
		return links[0], true
	}
	return models.SocialLink{}, false
}

func orNotProvided(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return notProvided
	}
	return v
}

func styleColor(token string, fallback color.RGBA) color.RGBA {
	if c, ok := passkit.ParseColor(token); ok {
		return c
	}
	return fallback
}

var _ IPassService = (*PassService)(nil)
