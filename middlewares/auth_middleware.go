package middlewares

import (
	"strings"

	"ccaportal/models"
	"ccaportal/pkg/tokens"

	"github.com/gofiber/fiber/v2"
)

const actorLocalsKey = "actor"

// AuthMiddleware verifies the request's bearer token and stores the actor
// in locals. Review tokens (President/Patron links) carry the submission
// they were issued for.
func AuthMiddleware(signer *tokens.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authentication token")
		}

		if claims, err := signer.ParseActor(raw); err == nil && claims.Role != string(models.RolePresident) && claims.Role != string(models.RolePatron) {
			c.Locals(actorLocalsKey, models.Actor{ID: claims.AccountID, Role: models.ActorRole(claims.Role)})
			return c.Next()
		}
		if claims, err := signer.ParseReview(raw); err == nil {
			c.Locals(actorLocalsKey, models.Actor{
				ID:           claims.SocietyID,
				Role:         models.ActorRole(claims.Role),
				SubmissionID: claims.SubmissionID,
			})
			return c.Next()
		}
		return fiber.NewError(fiber.StatusUnauthorized, "invalid authentication token")
	}
}

// ActorFromCtx returns the actor the auth middleware stored.
func ActorFromCtx(c *fiber.Ctx) (models.Actor, bool) {
	actor, ok := c.Locals(actorLocalsKey).(models.Actor)
	return actor, ok
}

func bearerToken(c *fiber.Ctx) string {
	const prefix = "Bearer "
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	// Review links put the token in the query string.
	return strings.TrimSpace(c.Query("token"))
}
