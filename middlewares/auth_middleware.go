package middlewares

import (
	"strings"

	"cardify.app/configs/configslog"
	"cardify.app/pkg/apierrors"
	"cardify.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals anahtarları
const (
	LocalsUserID    = "userID"
	LocalsUserEmail = "userEmail"
)

// TokenParser bearer token'ı doğrulayan bileşen (services.IAuthService).
type TokenParser interface {
	ParseToken(token string) (*services.Claims, error)
}

// AuthMiddleware "Authorization: Bearer <token>" başlığını doğrular ve kullanıcının
// UID'ini ve normalize edilmiş e-postasını Locals'a yazar. Token yoksa veya
// geçersizse 401 döner.
func AuthMiddleware(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return apierrors.Respond(c, fiber.StatusUnauthorized, apierrors.KindUnauthenticated, "Authentication required")
		}

		claims, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			configslog.Log.Debug("Geçersiz token reddedildi", zap.String("path", c.Path()), zap.Error(err))
			return apierrors.Respond(c, fiber.StatusUnauthorized, apierrors.KindUnauthenticated, "Invalid or expired token")
		}

		c.Locals(LocalsUserID, claims.Subject)
		c.Locals(LocalsUserEmail, strings.ToLower(strings.TrimSpace(claims.Email)))
		return c.Next()
	}
}

// UserID AuthMiddleware'in yazdığı UID'i döndürür.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}

// UserEmail AuthMiddleware'in yazdığı e-postayı döndürür.
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalsUserEmail).(string)
	return email
}
