package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the aggregated dashboard payload. Treasury only.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Param        period  query     string  false  "monthly | quarterly | yearly"  default(monthly)
// @Success      200     {object}  domain.DashboardSummary
// @Failure      400     {object}  map[string]string
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	period := domain.SummaryPeriod(c.QueryParam("period"))
	if period == "" {
		period = domain.PeriodMonthly
	}

	summary, err := h.dashboardService.Summary(c.Request().Context(), period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// AnnualCashFlow returns the year's month-by-month flow. Treasury only.
func (h *DashboardHandler) AnnualCashFlow(c echo.Context) error {
	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = parsed
	}

	report, err := h.dashboardService.AnnualCashFlow(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
