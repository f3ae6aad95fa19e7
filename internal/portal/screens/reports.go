package screens

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// Reports renders the annual cash flow screen. Defaults to the current year;
// a non-numeric year falls back the same way.
func (h *Handlers) Reports(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year <= 0 {
		year = time.Now().UTC().Year()
	}

	report, err := h.api.AnnualCashFlow(c.Request().Context(), year)
	if err != nil {
		return h.screenError(c, "reports", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"screen":        "reports",
		"report":        report,
		"pending_count": h.pendingCount(c),
	})
}
