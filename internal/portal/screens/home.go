package screens

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/portal/auth"
	"github.com/kibfin/supplier-portal/internal/portal/routes"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Home renders the role home: the treasury dashboard for treasury users and
// the branch portal for everyone else.
func (h *Handlers) Home(c echo.Context) error {
	identity, ok := routes.Identity(c)
	if !ok {
		// The guard redirects before this can happen.
		return c.Redirect(http.StatusFound, routes.LoginPath)
	}
	if identity.Role == domain.RoleTreasury {
		return h.dashboard(c)
	}
	return h.branchPortal(c, identity)
}

// dashboard joins the three datasets behind the treasury home screen. If any
// fetch fails the screen renders its error state instead of a partial view.
func (h *Handlers) dashboard(c echo.Context) error {
	period := domain.SummaryPeriod(c.QueryParam("period"))
	if period == "" {
		period = domain.PeriodMonthly
	}

	var (
		summary  *domain.DashboardSummary
		requests []domain.SupplierRequest
		fields   []domain.SupplierField
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		summary, err = h.api.DashboardSummary(ctx, period)
		return err
	})
	g.Go(func() (err error) {
		requests, err = h.api.PendingSupplierRequests(ctx)
		return err
	})
	g.Go(func() (err error) {
		fields, err = h.api.SupplierFields(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.screenError(c, "dashboard", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"screen":           "dashboard",
		"period":           period,
		"summary":          summary,
		"pending_requests": requests,
		"supplier_fields":  fields,
		"pending_count":    h.pendingCount(c),
	})
}

// branchPortal renders the branch manager home: the branch itself, then its
// balance, recent transactions, notifications and the request-form fields
// fetched concurrently. An optional query searches the supplier catalogue.
func (h *Handlers) branchPortal(c echo.Context, identity *auth.Identity) error {
	ctx := c.Request().Context()

	branch, err := h.api.BranchOfUser(ctx, identity.UserID)
	if err != nil {
		return h.screenError(c, "branch-portal", err)
	}

	var (
		balance       *upstream.Balance
		transactions  []domain.Transaction
		notifications []domain.Notification
		fields        []domain.SupplierField
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		balance, err = h.api.BranchBalance(gctx, branch.ID)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = h.api.BranchTransactions(gctx, branch.ID)
		return err
	})
	g.Go(func() (err error) {
		notifications, err = h.api.Notifications(gctx)
		return err
	})
	g.Go(func() (err error) {
		fields, err = h.api.SupplierFields(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return h.screenError(c, "branch-portal", err)
	}

	view := echo.Map{
		"screen":          "branch-portal",
		"branch":          branch,
		"balance":         balance.Balance,
		"transactions":    transactions,
		"notifications":   notifications,
		"supplier_fields": fields,
	}

	if query, fieldID := c.QueryParam("query"), c.QueryParam("field_id"); query != "" || fieldID != "" {
		suppliers, err := h.api.SearchSuppliers(ctx, query, fieldID)
		if err != nil {
			view["search_error"] = errorMessage(err)
		} else {
			view["suppliers"] = suppliers
		}
	}
	if supplierID := c.QueryParam("supplier_id"); supplierID != "" {
		reviews, err := h.api.SupplierReviews(ctx, supplierID)
		if err != nil {
			view["reviews_error"] = errorMessage(err)
		} else {
			view["reviews"] = reviews
		}
	}

	return c.JSON(http.StatusOK, view)
}
