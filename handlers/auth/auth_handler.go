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

// AuthHandler kayıt, giriş ve profil isteklerini yönetir.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid request body")
	}

	user, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return h.authError(c, "Register", err)
	}
	return c.Status(http.StatusCreated).JSON(user)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apierrors.Respond(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid request body")
	}

	token, user, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.authError(c, "Login", err)
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"tokenType": "Bearer",
		"expiresIn": int(h.service.TokenTTL().Seconds()),
		"user":      user,
	})
}

// Profile GET /api/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middlewares.UserID(c))
	if err != nil {
		return h.authError(c, "Profile", err)
	}
	return c.JSON(user)
}

func (h *AuthHandler) authError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrAuthInvalidInput):
		return apierrors.RespondWithDetails(c, http.StatusBadRequest, apierrors.KindInvalidInput, "Invalid registration data", err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return apierrors.Respond(c, http.StatusConflict, apierrors.KindEmailTaken, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apierrors.Respond(c, http.StatusUnauthorized, apierrors.KindInvalidCredentials, "Invalid email or password")
	case errors.Is(err, services.ErrUserNotFound):
		return apierrors.Respond(c, http.StatusNotFound, apierrors.KindNotFound, "User not found")
	case errors.Is(err, services.ErrStorageUnavailable):
		configslog.Log.Error("Auth "+op+": veri deposu hatası", zap.Error(err))
		return apierrors.Respond(c, http.StatusServiceUnavailable, apierrors.KindStorageUnavailable, "User storage is unavailable")
	}
	configslog.Log.Error("Auth "+op+": beklenmeyen hata", zap.Error(err))
	return apierrors.Respond(c, http.StatusInternalServerError, apierrors.KindInternal, "Unexpected error")
}
