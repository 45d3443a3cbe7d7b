package routes

import (
	"ccaportal/handlers"
	"ccaportal/middlewares"
	"ccaportal/pkg/tokens"
	"ccaportal/services"

	"github.com/gofiber/fiber/v2"
)

// registerFileRoutes wires upload-metadata registration.
func registerFileRoutes(app *fiber.App, signer *tokens.Signer) {
	handler := handlers.NewFileHandler(services.NewFileService(signer))

	group := app.Group("/api/file")
	group.Use(
		middlewares.AuthMiddleware(signer),
		middlewares.ValidateUserAccess(),
		middlewares.ValidateCCAAccess(),
	)

	group.Post("/upload", handler.Upload)
	group.Post("/fetch", handler.Fetch)
}
