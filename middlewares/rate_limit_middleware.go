package middlewares

import (
	"time"

	"cardify.app/configs/configslog"
	"cardify.app/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// RateLimitMiddleware IP başına dakikada en fazla limit isteğe izin verir.
func RateLimitMiddleware(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			configslog.Log.Warn("İstek limiti aşıldı", zap.String("ip", c.IP()), zap.String("path", c.Path()))
			return apierrors.Respond(c, fiber.StatusTooManyRequests, apierrors.KindRateLimited, "Too many requests")
		},
	})
}
