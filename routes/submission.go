package routes

import (
	"ccaportal/configs"
	"ccaportal/handlers"
	"ccaportal/middlewares"
	"ccaportal/pkg/tokens"
	"ccaportal/repositories"
	"ccaportal/services"

	"github.com/gofiber/fiber/v2"
)

// registerSubmissionRoutes wires the submission lifecycle API. Every route
// passes the auth middleware and both stages of the access gate before its
// handler runs.
func registerSubmissionRoutes(app *fiber.App, cfg *configs.Config, signer *tokens.Signer) {
	validator := services.NewAnswerValidator(repositories.NewFileRepository(), signer)
	notifier := services.NewMailNotifier(cfg, signer)
	handler := handlers.NewSubmissionHandler(services.NewSubmissionService(validator, notifier))

	group := app.Group("/api/submission")
	group.Use(
		middlewares.AuthMiddleware(signer),
		middlewares.ValidateUserAccess(),
		middlewares.ValidateCCAAccess(),
	)

	group.Post("/submit", handler.SubmitForm)
	group.Post("/cca/add-note", handler.AddCCANote)
	group.Post("/society/add-note", handler.AddSocietyNote)
	group.Post("/fetch-list", handler.FetchList)
	group.Post("/update-status", handler.UpdateStatus)
	group.Post("/fetch", handler.Fetch)
	group.Post("/fetch-review", handler.FetchReview)
}
