package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Suppliers renders the supplier management screen: the search results for
// the current filters next to the field list backing the filter dropdown.
func (h *Handlers) Suppliers(c echo.Context) error {
	query, fieldID := c.QueryParam("query"), c.QueryParam("field_id")

	var (
		suppliers []domain.Supplier
		fields    []domain.SupplierField
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		suppliers, err = h.api.SearchSuppliers(ctx, query, fieldID)
		return err
	})
	g.Go(func() (err error) {
		fields, err = h.api.SupplierFields(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.screenError(c, "suppliers", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"screen":          "suppliers",
		"query":           query,
		"field_id":        fieldID,
		"suppliers":       suppliers,
		"supplier_fields": fields,
		"pending_count":   h.pendingCount(c),
	})
}

// CreateSupplier adds a supplier to the catalogue.
func (h *Handlers) CreateSupplier(c echo.Context) error {
	var form upstream.SupplierInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	supplier, err := h.api.CreateSupplier(c.Request().Context(), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

// UpdateSupplier edits an existing supplier.
func (h *Handlers) UpdateSupplier(c echo.Context) error {
	var form upstream.SupplierInput
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed request"})
	}

	supplier, err := h.api.UpdateSupplier(c.Request().Context(), c.Param("id"), form)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier from the catalogue.
func (h *Handlers) DeleteSupplier(c echo.Context) error {
	if err := h.api.DeleteSupplier(c.Request().Context(), c.Param("id")); err != nil {
		return h.actionError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
