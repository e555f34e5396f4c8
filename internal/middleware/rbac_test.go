package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newRBACApp(role interface{}) *fiber.App {
	app := fiber.New()
	app.Get("/staff",
		func(c *fiber.Ctx) error {
			if role != nil {
				c.Locals("user_role", role)
			}
			return c.Next()
		},
		RequireRole("teacher", "counselor", "admin"),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func TestRequireRoleAllowsStaff(t *testing.T) {
	for _, role := range []string{"teacher", "counselor", "admin", "  Admin "} {
		app := newRBACApp(role)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "role %q", role)
	}
}

func TestRequireRoleRejectsStudents(t *testing.T) {
	app := newRBACApp("student")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "Access denied", payload["error"])
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	app := newRBACApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
