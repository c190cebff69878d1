package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/utils"
)

// RequireAction ensures the authenticated user's role is permitted to
// perform the given action. The role-to-action mapping lives in one place,
// models.Role.Can, so route guards never enumerate roles themselves.
func RequireAction(action models.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := models.ParseRole(normalizeRoleValue(c.Locals("user_role")))
		if err != nil {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		if !role.Can(action) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		return c.Next()
	}
}

func normalizeRoleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case fmt.Stringer:
		return strings.ToLower(strings.TrimSpace(v.String()))
	default:
		if value == nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
	}
}
