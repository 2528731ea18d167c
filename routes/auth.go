package routes

import (
	auth_handlers "cardify.app/handlers/auth"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, deps *Dependencies) {
	authHandler := auth_handlers.NewAuthHandler(deps.AuthService)
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
}
