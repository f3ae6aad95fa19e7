package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type SupplierHandler struct {
	supplierService ports.SupplierService
	reviewService   ports.ReviewService
}

func NewSupplierHandler(supplierService ports.SupplierService, reviewService ports.ReviewService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService, reviewService: reviewService}
}

type supplierRequest struct {
	Name        string `json:"name" validate:"required"`
	FieldID     string `json:"field_id" validate:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
}

// Search returns suppliers matching the query and optional field filter.
//
// @Summary      Search the supplier catalogue
// @Tags         suppliers
// @Produce      json
// @Param        query     query     string  false  "Free-text name match"
// @Param        field_id  query     string  false  "Narrow to one field tag"
// @Success      200       {array}   domain.Supplier
// @Router       /suppliers/search [get]
func (h *SupplierHandler) Search(c echo.Context) error {
	suppliers, err := h.supplierService.Search(c.Request().Context(), domain.SupplierFilter{
		Query:   c.QueryParam("query"),
		FieldID: c.QueryParam("field_id"),
	})
	if err != nil {
		return err
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return c.JSON(http.StatusOK, suppliers)
}

// Create adds a supplier to the catalogue. Treasury only.
func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.supplierService.Create(c.Request().Context(), toSupplierInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, supplier)
}

// Update rewrites a supplier's details. Treasury only.
func (h *SupplierHandler) Update(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.supplierService.Update(c.Request().Context(), c.Param("id"), toSupplierInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier. Treasury only.
func (h *SupplierHandler) Delete(c echo.Context) error {
	if err := h.supplierService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reviews lists a supplier's reviews, newest first.
func (h *SupplierHandler) Reviews(c echo.Context) error {
	reviews, err := h.reviewService.ListBySupplier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func toSupplierInput(req supplierRequest) ports.SupplierInput {
	return ports.SupplierInput{
		Name:        req.Name,
		FieldID:     req.FieldID,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	}
}
