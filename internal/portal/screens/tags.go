package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type fieldForm struct {
	Name string `json:"name" form:"name"`
}

// TagManagement renders the supplier-field administration screen.
func (h *Handlers) TagManagement(c echo.Context) error {
	fields, err := h.api.SupplierFields(c.Request().Context())
	if err != nil {
		return h.screenError(c, "tag-management", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"screen":          "tag-management",
		"supplier_fields": fields,
		"pending_count":   h.pendingCount(c),
	})
}

// CreateTag adds a supplier field.
func (h *Handlers) CreateTag(c echo.Context) error {
	var form fieldForm
	if err := c.Bind(&form); err != nil || form.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a field name is required"})
	}

	field, err := h.api.CreateSupplierField(c.Request().Context(), form.Name)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusCreated, field)
}

// RenameTag renames a supplier field.
func (h *Handlers) RenameTag(c echo.Context) error {
	var form fieldForm
	if err := c.Bind(&form); err != nil || form.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a field name is required"})
	}

	field, err := h.api.RenameSupplierField(c.Request().Context(), c.Param("id"), form.Name)
	if err != nil {
		return h.actionError(c, err)
	}
	return c.JSON(http.StatusOK, field)
}
