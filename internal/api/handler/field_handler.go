package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type FieldHandler struct {
	fieldService ports.FieldService
}

func NewFieldHandler(fieldService ports.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

type fieldRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns the supplier-field tag vocabulary, name-ordered.
func (h *FieldHandler) List(c echo.Context) error {
	fields, err := h.fieldService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if fields == nil {
		fields = []domain.SupplierField{}
	}
	return c.JSON(http.StatusOK, fields)
}

// Create adds a new field tag. Treasury only.
func (h *FieldHandler) Create(c echo.Context) error {
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	field, err := h.fieldService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, field)
}

// Rename changes a field tag's display name. Treasury only.
func (h *FieldHandler) Rename(c echo.Context) error {
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	field, err := h.fieldService.Rename(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, field)
}
