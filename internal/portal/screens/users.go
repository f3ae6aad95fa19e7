package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// UserManagement renders the account administration screen.
func (h *Handlers) UserManagement(c echo.Context) error {
	users, err := h.api.Users(c.Request().Context())
	if err != nil {
		return h.screenError(c, "user-management", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"screen":        "user-management",
		"users":         users,
		"pending_count": h.pendingCount(c),
	})
}

// RegisterUser creates a portal account.
func (h *Handlers) RegisterUser(c echo.Context) error {
	var form upstream.UserInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	user, err := h.api.RegisterUser(c.Request().Context(), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// UpdateUser edits a portal account.
func (h *Handlers) UpdateUser(c echo.Context) error {
	var form upstream.UserInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	user, err := h.api.UpdateUser(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a portal account.
func (h *Handlers) DeleteUser(c echo.Context) error {
	if err := h.api.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return h.actionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RequestPasswordReset issues a one-time reset token for an account. The
// token comes back in the view so treasury can hand the reset link over.
func (h *Handlers) RequestPasswordReset(c echo.Context) error {
	token, err := h.api.RequestPasswordReset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"reset_token": token})
}
