package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
)

func actionApp(role string, action models.Action) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	app.Use(RequireAction(action))
	app.Get("/guarded", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireActionAllowsPermittedRole(t *testing.T) {
	app := actionApp("teacher", models.ActionManageExams)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireActionRejectsForbiddenRole(t *testing.T) {
	app := actionApp("student", models.ActionManageExams)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireActionRejectsUnknownRole(t *testing.T) {
	app := actionApp("superhero", models.ActionManageExams)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireActionRejectsMissingRole(t *testing.T) {
	app := actionApp("", models.ActionTakeExams)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireActionAdminHasManagementActions(t *testing.T) {
	for _, action := range []models.Action{
		models.ActionManageExams,
		models.ActionManageTeachers,
		models.ActionViewReports,
	} {
		app := actionApp("admin", action)
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
