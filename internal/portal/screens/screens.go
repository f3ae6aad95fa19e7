// Package screens maps portal routes to JSON view models. Handlers stay
// thin: fetch through the upstream client, shape the payload, surface
// upstream failures as an inline error field.
package screens

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/portal/auth"
	"github.com/kibfin/supplier-portal/internal/portal/notify"
	"github.com/kibfin/supplier-portal/internal/portal/routes"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Handlers carries the shared collaborators of every screen.
type Handlers struct {
	api        *upstream.Client
	auth       *auth.Manager
	badge      *notify.Registry
	cookieName string
	logger     zerolog.Logger
}

func NewHandlers(api *upstream.Client, authManager *auth.Manager, badge *notify.Registry, cookieName string, logger zerolog.Logger) *Handlers {
	return &Handlers{
		api:        api,
		auth:       authManager,
		badge:      badge,
		cookieName: cookieName,
		logger:     logger,
	}
}

// screenError renders a screen whose data could not be fetched. The shell of
// the screen still exists, so this stays a normal 200 with an inline error.
func (h *Handlers) screenError(c echo.Context, screen string, err error) error {
	h.logger.Warn().Err(err).Str("screen", screen).Msg("screen data fetch failed")
	return c.JSON(http.StatusOK, echo.Map{
		"screen": screen,
		"error":  errorMessage(err),
	})
}

// actionError renders a failed form action, keeping the upstream status when
// there is one.
func (h *Handlers) actionError(c echo.Context, err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Status, echo.Map{"error": apiErr.Message})
	}
	h.logger.Error().Err(err).Str("path", c.Path()).Msg("upstream call failed")
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "service temporarily unavailable"})
}

// errorMessage keeps upstream envelope text and masks transport failures.
func errorMessage(err error) string {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "service temporarily unavailable"
}

// pendingCount exposes the badge value for the session, zero until primed.
func (h *Handlers) pendingCount(c echo.Context) int64 {
	count, _ := h.badge.Count(routes.SID(c))
	return count
}
