package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/metrics"
	"github.com/kibfin/supplier-portal/internal/portal/routes"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type resetPasswordForm struct {
	Password string `json:"password" form:"password"`
}

// ShowLogin renders the login screen.
func (h *Handlers) ShowLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"screen": "login"})
}

// Login exchanges the submitted credentials for a fresh session and sends the
// browser to its role home. Every successful login gets a brand new sid.
func (h *Handlers) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"screen": "login", "error": "malformed request"})
	}

	ctx := c.Request().Context()

	// A stale session riding along on the old cookie is torn down first.
	if old := routes.SID(c); old != "" {
		if err := h.auth.Logout(ctx, old); err != nil {
			h.logger.Warn().Err(err).Msg("stale session teardown failed")
		}
	}

	sid := session.NewSID()
	identity, token, err := h.auth.Login(ctx, sid, form.Email, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if upstream.IsUnauthorized(err) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"screen": "login", "error": "invalid email or password"})
		}
		return h.actionError(c, err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if identity.Role == domain.RoleTreasury {
		h.badge.Start(sid, token)
	}
	return c.Redirect(http.StatusFound, routes.Home)
}

// Logout destroys the session, expires the cookie, and lands on the login
// screen. Works the same signed in or out.
func (h *Handlers) Logout(c echo.Context) error {
	if sid := routes.SID(c); sid != "" {
		if err := h.auth.Logout(c.Request().Context(), sid); err != nil {
			h.logger.Warn().Err(err).Msg("logout session clear failed")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, routes.LoginPath)
}

// ShowResetPassword renders the set-a-new-password screen behind a one-time
// reset link.
func (h *Handlers) ShowResetPassword(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"screen": "reset-password",
		"token":  c.Param("token"),
	})
}

// ResetPassword consumes the reset token and, on success, sends the browser
// to the login screen.
func (h *Handlers) ResetPassword(c echo.Context) error {
	var form resetPasswordForm
	if err := c.Bind(&form); err != nil || form.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"screen": "reset-password", "error": "a new password is required"})
	}

	if err := h.api.ResetPassword(c.Request().Context(), c.Param("token"), form.Password); err != nil {
		return h.actionError(c, err)
	}
	return c.Redirect(http.StatusFound, routes.LoginPath)
}
