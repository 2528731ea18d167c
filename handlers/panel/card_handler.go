package handlers

import (
	"errors"
	"net/http"

	"cardify.app/configs/configslog"
	"cardify.app/middlewares"
	"cardify.app/pkg/apierrors"
	"cardify.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCardHandler kullanıcının kendi kartvizitleri için JSON API handler'ı.
// Tüm rotalar AuthMiddleware arkasındadır.
type PanelCardHandler struct {
	service services.ICardService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler(service services.ICardService) *PanelCardHandler {
	return &PanelCardHandler{service: service}
}

type renameSlugRequest struct {
	Slug string `json:"slug"`
}

// ListCards GET /api/cards
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.service.ListCards(c.UserContext(), middlewares.UserEmail(c))
	if err != nil {
		return h.cardError(c, "ListCards", "", err)
	}
	return c.JSON(fiber.Map{"cards": cards})
}

// CreateCard POST /api/cards
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	var input services.CardInput
	if err := c.BodyParser(&input); err != nil {
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid request body")
	}

	card, err := h.service.CreateCard(c.UserContext(), middlewares.UserEmail(c), input)
	if err != nil {
		return h.cardError(c, "CreateCard", "", err)
	}
	return c.Status(http.StatusCreated).JSON(card)
}

// GetCard GET /api/cards/:id
func (h *PanelCardHandler) GetCard(c *fiber.Ctx) error {
	id := c.Params("id")
	card, err := h.service.GetCardForOwner(c.UserContext(), id, middlewares.UserEmail(c))
	if err != nil {
		return h.cardError(c, "GetCard", id, err)
	}
	return c.JSON(card)
}

// UpdateCard PUT /api/cards/:id
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	id := c.Params("id")
	var input services.CardInput
	if err := c.BodyParser(&input); err != nil {
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid request body")
	}

	card, err := h.service.UpdateCard(c.UserContext(), id, middlewares.UserEmail(c), input)
	if err != nil {
		return h.cardError(c, "UpdateCard", id, err)
	}
	return c.JSON(card)
}

// RenameSlug PATCH /api/cards/:id/slug
func (h *PanelCardHandler) RenameSlug(c *fiber.Ctx) error {
	id := c.Params("id")
	var req renameSlugRequest
	if err := c.BodyParser(&req); err != nil {
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid request body")
	}

	card, err := h.service.RenameCardSlug(c.UserContext(), id, middlewares.UserEmail(c), req.Slug)
	if err != nil {
		return h.cardError(c, "RenameSlug", id, err)
	}
	return c.JSON(card)
}

// DeleteCard DELETE /api/cards/:id
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteCard(c.UserContext(), id, middlewares.UserEmail(c)); err != nil {
		return h.cardError(c, "DeleteCard", id, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *PanelCardHandler) cardError(c *fiber.Ctx, op, id string, err error) error {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return apierrors.Respond(c, http.StatusNotFound, apierrors.KindNotFound, "Card not found")
	case errors.Is(err, services.ErrCardForbidden):
		return apierrors.Respond(c, http.StatusForbidden, apierrors.KindUnauthorized, "You do not own this card")
	case errors.Is(err, services.ErrSlugTaken):
		return apierrors.Respond(c, http.StatusConflict, apierrors.KindSlugConflict, "Slug is already taken")
	case errors.Is(err, services.ErrCardInvalidInput):
		return apierrors.RespondWithDetails(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid card data", err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		configslog.Log.Error("Panel "+op+": veri deposu hatası", zap.String("card_id", id), zap.Error(err))
		return apierrors.Respond(c, http.StatusServiceUnavailable, apierrors.KindStorageUnavailable, "Card storage is unavailable")
	}
	configslog.Log.Error("Panel "+op+": beklenmeyen hata", zap.String("card_id", id), zap.Error(err))
	return apierrors.Respond(c, http.StatusInternalServerError, apierrors.KindInternal, "Unexpected error")
}
