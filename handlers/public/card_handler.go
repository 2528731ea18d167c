package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"cardify.app/configs/configslog"
	"cardify.app/pkg/apierrors"
	"cardify.app/pkg/renderer"
	"cardify.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicCardHandler herkese açık kart sayfası, QR kodu ve pass indirme isteklerini yönetir.
type PublicCardHandler struct {
	resolver    services.ICardResolver
	qrService   services.IQRService
	passService services.IPassService
	baseURL     string
}

// NewPublicCardHandler yeni bir PublicCardHandler oluşturur.
func NewPublicCardHandler(resolver services.ICardResolver, qr services.IQRService, pass services.IPassService, publicBaseURL string) *PublicCardHandler {
	return &PublicCardHandler{resolver: resolver, qrService: qr, passService: pass, baseURL: publicBaseURL}
}

// ShowCard GET /card/:slug
func (h *PublicCardHandler) ShowCard(c *fiber.Ctx) error {
	slug := c.Params("slug")
	card, err := h.resolver.Resolve(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return renderer.RenderError(c, http.StatusNotFound, "Card not found", "This business card does not exist or has been moved.")
		}
		configslog.Log.Error("ShowCard: kart çözülemedi", zap.String("slug", slug), zap.Error(err))
		return renderer.RenderError(c, http.StatusInternalServerError, "Something went wrong", "The card could not be loaded. Please try again later.")
	}

	return renderer.Render(c, "public/card_view", "layouts/public_layout", fiber.Map{
		renderer.TitleKeyView: card.FullName(),
		"Card":                card,
		"Links":               card.CompleteSocialLinks(),
		"Styles":              card.CardStyles,
		"CardURL":             services.CanonicalCardURL(h.baseURL, card.Slug),
		"QRCodeURL":           "/card/" + card.Slug + "/qr.png",
		"PassURL":             "/api/generate-pass/" + card.Slug,
	}, http.StatusOK)
}

// CardQRCode GET /card/:slug/qr.png?size=256
func (h *PublicCardHandler) CardQRCode(c *fiber.Ctx) error {
	slug := c.Params("slug")
	card, err := h.resolver.Resolve(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return apierrors.Respond(c, http.StatusNotFound, apierrors.KindNotFound, "Card not found")
		}
		configslog.Log.Error("CardQRCode: kart çözülemedi", zap.String("slug", slug), zap.Error(err))
		return apierrors.Respond(c, http.StatusServiceUnavailable, apierrors.KindStorageUnavailable, "Card storage is unavailable")
	}

	size, _ := strconv.Atoi(c.Query("size"))
	png, err := h.qrService.CardQRCode(card, size)
	if err != nil {
		configslog.Log.Error("CardQRCode: QR üretilemedi", zap.String("slug", slug), zap.Error(err))
		return apierrors.Respond(c, http.StatusInternalServerError, apierrors.KindInternal, "QR code could not be generated")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return c.Send(png)
}

// GeneratePass POST /api/generate-pass/:slugOrId
func (h *PublicCardHandler) GeneratePass(c *fiber.Ctx) error {
	key := c.Params("slugOrId")
	pkg, err := h.passService.GeneratePass(c.UserContext(), key)
	if err != nil {
		return h.passError(c, key, err)
	}

	c.Set(fiber.HeaderContentType, pkg.ContentType())
	c.Set(fiber.HeaderContentDisposition, pkg.ContentDisposition())
	return c.Status(http.StatusOK).Send(pkg.Data)
}

// MethodNotAllowed pass uç noktasına POST dışındaki istekler için.
func (h *PublicCardHandler) MethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return apierrors.Respond(c, http.StatusMethodNotAllowed, apierrors.KindMethodNotAllowed, "Method Not Allowed")
}

// passError hata türünü HTTP durumuna çevirir. İstemciye sadece sabit metinler gider,
// ayrıntılar loglanır.
func (h *PublicCardHandler) passError(c *fiber.Ctx, key string, err error) error {
	const failed = "Failed to generate pass"

	var (
		kind    apierrors.Kind
		details string
	)
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return apierrors.Respond(c, http.StatusNotFound, apierrors.KindNotFound, "Card not found")
	case errors.Is(err, services.ErrMissingRequiredFields):
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindMissingRequiredFields, "Missing required card fields")
	case errors.Is(err, services.ErrTemplateNotFound):
		kind, details = apierrors.KindTemplateNotFound, "Pass template not found"
	case errors.Is(err, services.ErrCertificateLoad):
		kind, details = apierrors.KindCertificateLoadError, "Signing certificates are unavailable"
	case errors.Is(err, services.ErrSigningFailure):
		kind, details = apierrors.KindSigningFailure, "Pass could not be signed"
	case errors.Is(err, services.ErrStorageUnavailable):
		kind, details = apierrors.KindStorageUnavailable, "Card storage is unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind, details = apierrors.KindInternal, "Request was cancelled"
	default:
		kind, details = apierrors.KindInternal, "Unexpected error"
	}

	configslog.Log.Error("Pass üretilemedi",
		zap.String("key", key),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	return apierrors.RespondWithDetails(c, http.StatusInternalServerError, kind, failed, details)
}
