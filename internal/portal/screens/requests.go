package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// CreateSupplierRequest files a branch manager's new-supplier request.
func (h *Handlers) CreateSupplierRequest(c echo.Context) error {
	var form upstream.RequestInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	request, err := h.api.CreateSupplierRequest(c.Request().Context(), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// ApproveRequest turns a pending supplier request into a catalogue supplier,
// then marks the request approved. A failed supplier creation leaves the
// request pending.
func (h *Handlers) ApproveRequest(c echo.Context) error {
	var form upstream.SupplierInput
	if err := c.Bind(&form); err != nil || form.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "supplier details are required to approve"})
	}

	ctx := c.Request().Context()

	supplier, err := h.api.CreateSupplier(ctx, form)
	if err != nil {
		return h.actionError(c, err)
	}

	request, err := h.api.ResolveSupplierRequest(ctx, c.Param("id"), domain.RequestApproved)
	if err != nil {
		// The supplier exists but the request is still pending; report both.
		h.logger.Error().Err(err).Str("supplier_id", supplier.ID).Msg("request resolution failed after supplier creation")
		return h.actionError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"request":  request,
		"supplier": supplier,
	})
}

// DeclineRequest marks a pending supplier request declined.
func (h *Handlers) DeclineRequest(c echo.Context) error {
	request, err := h.api.ResolveSupplierRequest(c.Request().Context(), c.Param("id"), domain.RequestDeclined)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusOK, request)
}
