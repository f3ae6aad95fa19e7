package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// MarkNotificationRead marks one of the caller's notifications read.
func (h *Handlers) MarkNotificationRead(c echo.Context) error {
	if err := h.api.MarkNotificationRead(c.Request().Context(), c.Param("id")); err != nil {
		return h.actionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead marks every notification of the caller read.
func (h *Handlers) MarkAllNotificationsRead(c echo.Context) error {
	if err := h.api.MarkAllNotificationsRead(c.Request().Context()); err != nil {
		return h.actionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateReview files a supplier review on behalf of the caller.
func (h *Handlers) CreateReview(c echo.Context) error {
	var form upstream.ReviewInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	review, err := h.api.CreateReview(c.Request().Context(), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}
