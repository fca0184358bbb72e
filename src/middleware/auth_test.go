package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
	"welfare-center-api/src/utils"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler})
	app.Use(Authenticate())
	app.Get("/staff-only", RequireRoles(models.RoleAdmin, models.RoleStaff), func(c *fiber.Ctx) error {
		principal := MustPrincipal(c)
		return c.JSON(principal)
	})
	app.Get("/open", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestGuardRejectsAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest("GET", "/staff-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest("GET", "/staff-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGarbageTokenIsLoggedNotSwallowed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	hook := logrustest.NewGlobal()
	defer hook.Reset()
	prevLevel := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(prevLevel)

	req := httptest.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "bearer token rejected" {
			logged = true
			assert.Equal(t, logrus.DebugLevel, entry.Level)
			assert.Error(t, entry.Data[logrus.ErrorKey].(error))
		}
	}
	assert.True(t, logged)
}

func TestGuardRejectsWrongRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	token, _, err := utils.GenerateAccessToken("user-1", models.RoleUser, "inst-1", []string{"ROLE_USER"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/staff-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	token, _, err := utils.GenerateAccessToken("staff-1", models.RoleStaff, "inst-1", []string{"ROLE_STAFF"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/staff-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAnonymousPassesOpenRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newTestApp()

	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler})
	app.Use(Authenticate())
	app.Get("/me", func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		assert.Equal(t, "admin-7", principal.ID)
		assert.Equal(t, models.RoleAdmin, principal.Role)
		assert.Equal(t, "inst-3", principal.InstitutionID)
		return c.SendStatus(fiber.StatusNoContent)
	})

	token, _, err := utils.GenerateAccessToken("admin-7", models.RoleAdmin, "inst-3", []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
