package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing user_id means the middleware
// never ran (or the token carried no identity) and the request is unusable.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleID, _ := c.Get("role_id").(int)
	return userID, domain.RoleFromID(roleID), nil
}
