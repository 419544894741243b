package middleware

import (
	"prosper-backend/internal/application/auth"
	"prosper-backend/internal/constants"
	"prosper-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission checks the session member's role set against the
// capability map. The check lives entirely at the edge; services never look
// at roles. Unconfigured permission -> 500; no allowed role -> 403.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		roles := auth.RolesFromSession(user)
		if len(roles) == 0 {
			return response.Error(c, "Authorization error", fiber.StatusInternalServerError, nil)
		}
		if allowed, ok := constants.PermissionRoles[permission]; !ok || len(allowed) == 0 {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !constants.AllowedAnyRole(permission, roles) {
			return response.Forbidden(c, "Member is forbidden from performing this action")
		}
		return c.Next()
	}
}
