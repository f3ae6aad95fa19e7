package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/api/metrics"
	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type RequestHandler struct {
	requestService ports.RequestService
}

func NewRequestHandler(requestService ports.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

type createRequestRequest struct {
	BranchID      string `json:"branch_id"`
	SupplierName  string `json:"supplier_name" validate:"required"`
	FieldID       string `json:"field_id"`
	ContactName   string `json:"contact_name"`
	Phone         string `json:"phone"`
	Justification string `json:"justification"`
}

type resolveRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=approved declined"`
}

// Create files a new-supplier request on behalf of the caller.
//
// @Summary      Request a new supplier
// @Tags         supplier-requests
// @Accept       json
// @Produce      json
// @Param        body  body      createRequestRequest  true  "Requested supplier"
// @Success      201   {object}  domain.SupplierRequest
// @Failure      400   {object}  map[string]string
// @Router       /supplier-requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.requestService.Create(c.Request().Context(), ports.CreateRequestInput{
		RequestedBy:   userID,
		BranchID:      req.BranchID,
		SupplierName:  req.SupplierName,
		FieldID:       req.FieldID,
		ContactName:   req.ContactName,
		Phone:         req.Phone,
		Justification: req.Justification,
	})
	if err != nil {
		return err
	}

	metrics.SupplierRequestsTotal.WithLabelValues(string(domain.RequestPending)).Inc()
	return c.JSON(http.StatusCreated, created)
}

// ListPending returns requests awaiting a treasury decision. Treasury only.
func (h *RequestHandler) ListPending(c echo.Context) error {
	requests, err := h.requestService.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []domain.SupplierRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

// Resolve approves or declines a pending request. Treasury only.
func (h *RequestHandler) Resolve(c echo.Context) error {
	var req resolveRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resolved, err := h.requestService.Resolve(c.Request().Context(), c.Param("id"), domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.SupplierRequestsTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, resolved)
}
