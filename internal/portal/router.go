// Package portal wires the gateway: session store, upstream client, auth
// manager, notification pollers, route guard and screen handlers.
package portal

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/kibfin/supplier-portal/internal/portal/auth"
	"github.com/kibfin/supplier-portal/internal/portal/notify"
	"github.com/kibfin/supplier-portal/internal/portal/routes"
	"github.com/kibfin/supplier-portal/internal/portal/screens"
	"github.com/kibfin/supplier-portal/internal/portal/session"
	"github.com/kibfin/supplier-portal/internal/portal/upstream"
)

// Options carries the per-deployment knobs of the gateway.
type Options struct {
	APIBaseURL   string
	CookieName   string
	SessionTTL   time.Duration
	PollInterval time.Duration
}

// Router is the assembled gateway plus the background state that must be torn
// down on shutdown.
type Router struct {
	Echo  *echo.Echo
	badge *notify.Registry
}

// NewRouter assembles the portal around the given session store.
func NewRouter(store session.Store, opts Options, log zerolog.Logger) *Router {
	transport := &upstream.Transport{}
	api := upstream.NewClient(opts.APIBaseURL, transport)

	manager := auth.NewManager(store, api, opts.SessionTTL, log)
	badge := notify.NewRegistry(api, opts.PollInterval, log)

	// Session teardown funnels through the manager: a 401 from the api, an
	// unusable stored token and an explicit logout all stop the poller.
	manager.OnLogout(badge.Stop)
	transport.OnUnauthorized = manager.Destroy

	handlers := screens.NewHandlers(api, manager, badge, opts.CookieName, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("supplier_portal"))
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e.Use(routes.Guard(manager, opts.CookieName, badge))

	// Public screens.
	e.GET(routes.LoginPath, handlers.ShowLogin)
	e.POST(routes.LoginPath, handlers.Login)
	e.GET("/reset-password/:token", handlers.ShowResetPassword)
	e.POST("/reset-password/:token", handlers.ResetPassword)

	// Shared screens and actions.
	e.GET(routes.Home, handlers.Home)
	e.POST("/logout", handlers.Logout)
	e.POST("/supplier-requests", handlers.CreateSupplierRequest)
	e.POST("/reviews", handlers.CreateReview)
	e.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
	e.PUT("/notifications/mark-all-read", handlers.MarkAllNotificationsRead)

	// Treasury screens.
	e.GET("/suppliers", handlers.Suppliers)
	e.GET("/reports", handlers.Reports)
	e.GET("/tag-management", handlers.TagManagement)
	e.GET("/user-management", handlers.UserManagement)

	// Treasury actions.
	e.POST("/suppliers", handlers.CreateSupplier)
	e.PUT("/suppliers/:id", handlers.UpdateSupplier)
	e.DELETE("/suppliers/:id", handlers.DeleteSupplier)
	e.POST("/supplier-requests/:id/approve", handlers.ApproveRequest)
	e.POST("/supplier-requests/:id/decline", handlers.DeclineRequest)
	e.POST("/tag-management", handlers.CreateTag)
	e.PUT("/tag-management/:id", handlers.RenameTag)
	e.POST("/user-management", handlers.RegisterUser)
	e.PUT("/user-management/:id", handlers.UpdateUser)
	e.DELETE("/user-management/:id", handlers.DeleteUser)
	e.POST("/user-management/:id/request-password-reset", handlers.RequestPasswordReset)

	// Anything else bounces off the guard to the role home or the login
	// screen; the handler itself is unreachable but echo requires one.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, routes.Home)
	})

	return &Router{Echo: e, badge: badge}
}

// Shutdown stops every background poller.
func (r *Router) Shutdown() {
	r.badge.StopAll()
}
