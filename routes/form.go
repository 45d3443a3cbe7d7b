package routes

import (
	"ccaportal/handlers"
	"ccaportal/middlewares"
	"ccaportal/pkg/tokens"
	"ccaportal/services"

	"github.com/gofiber/fiber/v2"
)

// registerFormRoutes wires the form-authoring API.
func registerFormRoutes(app *fiber.App, signer *tokens.Signer) {
	handler := handlers.NewFormHandler(services.NewFormService())

	group := app.Group("/api/form")
	group.Use(
		middlewares.AuthMiddleware(signer),
		middlewares.ValidateUserAccess(),
		middlewares.ValidateCCAAccess(),
	)

	group.Post("/create", handler.Create)
	group.Post("/edit", handler.Edit)
	group.Post("/delete", handler.Delete)
	group.Post("/fetch", handler.Fetch)
	group.Get("/fetch-list", handler.FetchList)
	group.Post("/change-status", handler.ChangeStatus)
	group.Post("/fetch-checklist", handler.FetchChecklist)
}
