package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// respond writes the API's uniform success envelope: every payload carries
// the numeric status code and its name alongside the handler's fields.
func respond(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{
		"statusCode": status,
		"statusName": http.StatusText(status),
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}
