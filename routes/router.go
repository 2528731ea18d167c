package routes

import (
	"context"
	"time"

	"cardify.app/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(requestid.New())         // X-Request-ID
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))

	app.Get("/healthz", healthHandler(deps))

	// --- Rota Grupları ---
	registerAuthRoutes(app, deps)   // /auth
	registerAPIRoutes(app, deps)    // /api
	registerPublicRoutes(app, deps) // /card

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

// healthHandler veritabanı bağlantısını kontrol eder.
func healthHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			sqlDB, err := deps.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				return apierrors.Respond(c, fiber.StatusServiceUnavailable, apierrors.KindStorageUnavailable, "Database is unavailable")
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return apierrors.Respond(c, fiber.StatusNotFound, apierrors.KindNotFound, "Not found")
}
