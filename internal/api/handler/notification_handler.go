package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type NotificationHandler struct {
	notificationService ports.NotificationService
	requestService      ports.RequestService
}

func NewNotificationHandler(notificationService ports.NotificationService, requestService ports.RequestService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, requestService: requestService}
}

type countResponse struct {
	Count int64 `json:"count"`
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return c.JSON(http.StatusOK, notifications)
}

// PendingRequestsCount returns the number of supplier requests awaiting a
// decision. Polled by the portal's notification badge every 30 seconds.
func (h *NotificationHandler) PendingRequestsCount(c echo.Context) error {
	count, err := h.requestService.CountPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// MarkRead flags a single notification of the caller as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead flags every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkAllRead(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
