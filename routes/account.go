package routes

import (
	"ccaportal/handlers"
	"ccaportal/middlewares"
	"ccaportal/pkg/tokens"
	"ccaportal/services"

	"github.com/gofiber/fiber/v2"
)

// registerAccountRoutes wires account creation, restricted to CCA staff
// holding the matching CRUD permission.
func registerAccountRoutes(app *fiber.App, signer *tokens.Signer) {
	handler := handlers.NewAccountHandler(services.NewAccountService())

	group := app.Group("/api/account")
	group.Use(
		middlewares.AuthMiddleware(signer),
		middlewares.ValidateUserAccess(),
		middlewares.ValidateCCAAccess(),
	)

	group.Post("/cca/create-account", handler.CreateCCA)
	group.Post("/society/create-account", handler.CreateSociety)
}
