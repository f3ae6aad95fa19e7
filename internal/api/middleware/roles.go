package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

// RequireRole gates a route to the given roles. It expects Auth to have run
// first; a missing role_id is treated as forbidden, not as a server error.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, present := c.Get("role_id").(int)
			if !present {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[domain.RoleFromID(roleID)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireTreasury is shorthand for the back-office management routes.
func RequireTreasury() echo.MiddlewareFunc {
	return RequireRole(domain.RoleTreasury)
}
