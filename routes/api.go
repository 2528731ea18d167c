package routes

import (
	auth_handlers "cardify.app/handlers/auth"
	panel_handlers "cardify.app/handlers/panel"
	"cardify.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes kimlik doğrulama gerektiren /api rotalarını tanımlar.
func registerAPIRoutes(app *fiber.App, deps *Dependencies) {
	cardHandler := panel_handlers.NewPanelCardHandler(deps.CardService)
	authHandler := auth_handlers.NewAuthHandler(deps.AuthService)
	requireAuth := middlewares.AuthMiddleware(deps.AuthService)

	app.Get("/api/profile", requireAuth, authHandler.Profile) // GET /api/profile

	cards := app.Group("/api/cards", requireAuth)
	cards.Get("/", cardHandler.ListCards)            // GET /api/cards
	cards.Post("/", cardHandler.CreateCard)          // POST /api/cards
	cards.Get("/:id", cardHandler.GetCard)           // GET /api/cards/{id}
	cards.Put("/:id", cardHandler.UpdateCard)        // PUT /api/cards/{id}
	cards.Patch("/:id/slug", cardHandler.RenameSlug) // PATCH /api/cards/{id}/slug
	cards.Delete("/:id", cardHandler.DeleteCard)     // DELETE /api/cards/{id}
}
