package middlewares

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"ccaportal/models"
	"ccaportal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// gateApp builds a minimal app: a stub auth layer that injects the given
// actor, both gate stages, and an OK handler on the requested path.
func gateApp(path string, actor *models.Actor, lookup ccaLookup) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var forbidden *apperrors.ForbiddenAccessError
			if errors.As(err, &forbidden) {
				return c.Status(fiber.StatusForbidden).SendString(forbidden.Reason)
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Post(path,
		func(c *fiber.Ctx) error {
			if actor != nil {
				c.Locals(actorLocalsKey, *actor)
			}
			return c.Next()
		},
		ValidateUserAccess(),
		validateCCAAccess(lookup),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func gateStatus(t *testing.T, path string, actor *models.Actor, lookup ccaLookup) int {
	t.Helper()
	app := gateApp(path, actor, lookup)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, path, nil))
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func memberLookup(permissions models.CCAPermissions) ccaLookup {
	return func(_ context.Context, id uint) (*models.CCAAccount, error) {
		return &models.CCAAccount{
			BaseModel:   models.BaseModel{ID: id},
			Role:        models.CCARoleMember,
			Permissions: datatypes.NewJSONType(permissions),
		}, nil
	}
}

func adminLookup(_ context.Context, id uint) (*models.CCAAccount, error) {
	return &models.CCAAccount{
		BaseModel: models.BaseModel{ID: id},
		Role:      models.CCARoleAdmin,
	}, nil
}

func TestValidateUserAccess_RoleTable(t *testing.T) {
	for path, allowed := range RouteRoleTable() {
		allowedSet := make(map[models.ActorRole]struct{}, len(allowed))
		for _, role := range allowed {
			allowedSet[role] = struct{}{}
		}
		for _, role := range []models.ActorRole{models.RoleSociety, models.RolePresident, models.RolePatron, models.RoleCCA} {
			actor := models.Actor{ID: 1, Role: role}
			status := gateStatus(t, path, &actor, adminLookup)
			if _, ok := allowedSet[role]; ok {
				assert.Equal(t, fiber.StatusOK, status, "%s should admit %s", path, role)
			} else {
				assert.Equal(t, fiber.StatusForbidden, status, "%s should reject %s", path, role)
			}
		}
	}
}

func TestValidateUserAccess_UnlistedRouteIsOpen(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleSociety}
	assert.Equal(t, fiber.StatusOK, gateStatus(t, "/api/unlisted/op", &actor, adminLookup))
}

func TestValidateUserAccess_MissingActor(t *testing.T) {
	assert.Equal(t, fiber.StatusForbidden, gateStatus(t, "/api/form/create", nil, adminLookup))
}

func TestValidateCCAAccess_FlagEnforced(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleCCA}

	// Without the flag the gated route is denied.
	status := gateStatus(t, "/api/form/fetch-checklist", &actor, memberLookup(models.CCAPermissions{}))
	assert.Equal(t, fiber.StatusForbidden, status)

	// With the flag it passes.
	status = gateStatus(t, "/api/form/fetch-checklist", &actor, memberLookup(models.CCAPermissions{CreateReqTask: true}))
	assert.Equal(t, fiber.StatusOK, status)

	// Holding an unrelated flag does not help.
	status = gateStatus(t, "/api/form/fetch-checklist", &actor, memberLookup(models.CCAPermissions{SetFormStatus: true}))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestValidateCCAAccess_AdminBypass(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleCCA}
	for path := range RoutePermissionTable() {
		assert.Equal(t, fiber.StatusOK, gateStatus(t, path, &actor, adminLookup), "admin must bypass the flag gate on %s", path)
	}
}

func TestValidateCCAAccess_UngatedRoute(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleCCA}
	// fetch-list is stage-1 allowed for CCA and has no stage-2 flag.
	assert.Equal(t, fiber.StatusOK, gateStatus(t, "/api/submission/fetch-list", &actor, memberLookup(models.CCAPermissions{})))
}

func TestValidateCCAAccess_NonCCAPassesThrough(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleSociety}
	failing := func(_ context.Context, _ uint) (*models.CCAAccount, error) {
		return nil, errors.New("must not be called")
	}
	assert.Equal(t, fiber.StatusOK, gateStatus(t, "/api/submission/submit", &actor, failing))
}

func TestValidateCCAAccess_LookupFailure(t *testing.T) {
	actor := models.Actor{ID: 1, Role: models.RoleCCA}
	failing := func(_ context.Context, _ uint) (*models.CCAAccount, error) {
		return nil, errors.New("db down")
	}
	assert.Equal(t, fiber.StatusForbidden, gateStatus(t, "/api/form/create", &actor, failing))
}

func TestRouteTables_Consistency(t *testing.T) {
	roles := RouteRoleTable()

	// Every flag-gated route must also be role-gated, and its flag known.
	for path, flag := range RoutePermissionTable() {
		allowed, ok := roles[path]
		require.True(t, ok, "flag-gated route %s missing from the role table", path)

		ccaAllowed := false
		for _, role := range allowed {
			if role == models.RoleCCA {
				ccaAllowed = true
			}
		}
		assert.True(t, ccaAllowed, "flag-gated route %s does not admit CCA at stage 1", path)

		probe := models.CCAPermissions{
			CCACrud: true, SocietyCRUD: true, AccessFormMaker: true,
			CreateReqTask: true, CreateCustomTask: true, ArchiveTask: true,
			CreateTaskStatus: true, SetFormStatus: true, AddCCANote: true,
		}
		assert.True(t, probe.Has(flag), "route %s gates on unknown flag %q", path, flag)
	}

	// Every operation the service exposes must carry an explicit stage-1
	// entry; relying on the default-open fallback is a wiring mistake.
	registered := []string{
		"/api/account/cca/create-account",
		"/api/account/society/create-account",
		"/api/form/create",
		"/api/form/edit",
		"/api/form/delete",
		"/api/form/fetch",
		"/api/form/fetch-list",
		"/api/form/change-status",
		"/api/form/fetch-checklist",
		"/api/submission/submit",
		"/api/submission/cca/add-note",
		"/api/submission/society/add-note",
		"/api/submission/fetch-list",
		"/api/submission/update-status",
		"/api/submission/fetch",
		"/api/submission/fetch-review",
		"/api/file/upload",
		"/api/file/fetch",
	}
	for _, path := range registered {
		_, ok := roles[path]
		assert.True(t, ok, "registered route %s has no explicit role entry", path)
	}
}
