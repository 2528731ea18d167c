package routes

import (
	public_handlers "cardify.app/handlers/public"
	"cardify.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes herkese açık kart sayfası, QR ve pass rotalarını tanımlar.
func registerPublicRoutes(app *fiber.App, deps *Dependencies) {
	h := public_handlers.NewPublicCardHandler(deps.Resolver, deps.QRService, deps.PassService, deps.PublicBaseURL)

	app.Get("/card/:slug", h.ShowCard)          // GET /card/{slug}
	app.Get("/card/:slug/qr.png", h.CardQRCode) // GET /card/{slug}/qr.png

	limit := deps.PassRateLimit
	if limit <= 0 {
		limit = 30
	}
	app.Post("/api/generate-pass/:slugOrId", middlewares.RateLimitMiddleware(limit), h.GeneratePass)
	app.All("/api/generate-pass/:slugOrId", h.MethodNotAllowed)
}
