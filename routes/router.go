package routes

import (
	"errors"

	"ccaportal/configs"
	"ccaportal/configs/configslog"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/tokens"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application with the shared middleware stack and
// every route group registered.
func NewApp(cfg *configs.Config, signer *tokens.Signer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ccaportal",
		ErrorHandler: errorHandler,
	})

	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	registerAccountRoutes(app, signer)
	registerFormRoutes(app, signer)
	registerSubmissionRoutes(app, cfg, signer)
	registerFileRoutes(app, signer)

	app.Use(notFoundHandler)
	return app
}

// errorHandler maps the error taxonomy to transport codes. Anything
// outside the taxonomy is a storage or programming error and surfaces as a
// bare 500; internals are logged, never exposed.
func errorHandler(c *fiber.Ctx, err error) error {
	var notFound *apperrors.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"statusCode": fiber.StatusNotFound,
			"error":      string(notFound.Entity) + "NotFoundError",
			"message":    notFound.Reason,
		})
	}

	var validation *apperrors.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"statusCode": fiber.StatusBadRequest,
			"error":      "ValidationError",
			"message":    validation.Reason,
		})
	}

	var forbidden *apperrors.ForbiddenAccessError
	if errors.As(err, &forbidden) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"statusCode": fiber.StatusForbidden,
			"error":      "ForbiddenAccessError",
			"message":    forbidden.Reason,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"statusCode": fiberErr.Code,
			"message":    fiberErr.Message,
		})
	}

	configslog.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"statusCode": fiber.StatusInternalServerError,
		"message":    "internal server error",
	})
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"statusCode": fiber.StatusNotFound,
		"message":    "resource not found",
	})
}
