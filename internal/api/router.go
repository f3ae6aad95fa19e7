package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/kibfin/supplier-portal/internal/api/handler"
	"github.com/kibfin/supplier-portal/internal/api/middleware"
	"github.com/kibfin/supplier-portal/internal/core/service"
	mongodb "github.com/kibfin/supplier-portal/internal/infrastructure/db/mongo"
)

// loginRate allows 5 login attempts per minute per IP, all burstable.
const (
	loginRate  = rate.Limit(5.0 / 60.0)
	loginBurst = 5
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("supplier_api"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	resets := mongodb.NewResetRepository(db)
	suppliers := mongodb.NewSupplierRepository(db)
	fields := mongodb.NewFieldRepository(db)
	requests := mongodb.NewRequestRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	branches := mongodb.NewBranchRepository(db)
	transactions := mongodb.NewTransactionRepository(db)

	// --- Services ---
	notificationService := service.NewNotificationService(notifications)
	authService := service.NewAuthService(users, resets, jwtSecret, tokenTTL)
	userService := service.NewUserService(users)
	supplierService := service.NewSupplierService(suppliers, fields, log)
	fieldService := service.NewFieldService(fields)
	requestService := service.NewRequestService(requests, users, notificationService, log)
	reviewService := service.NewReviewService(reviews, suppliers)
	branchService := service.NewBranchService(branches, transactions)
	dashboardService := service.NewDashboardService(transactions, fields)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	supplierHandler := handler.NewSupplierHandler(supplierService, reviewService)
	fieldHandler := handler.NewFieldHandler(fieldService)
	requestHandler := handler.NewRequestHandler(requestService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService, requestService)
	branchHandler := handler.NewBranchHandler(branchService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authRequired := middleware.Auth(jwtSecret)
	treasuryOnly := middleware.RequireTreasury()

	api := e.Group("/api")

	// --- Public routes ---
	api.POST("/users/login", authHandler.Login, middleware.RateLimit(loginRate, loginBurst))
	api.POST("/users/reset-password", authHandler.ResetPassword)

	// --- Authenticated routes (any role) ---
	authed := api.Group("", authRequired)
	authed.GET("/suppliers/search", supplierHandler.Search)
	authed.GET("/suppliers/:id/reviews", supplierHandler.Reviews)
	authed.POST("/reviews", reviewHandler.Create)
	authed.GET("/supplier-fields", fieldHandler.List)
	authed.POST("/supplier-requests", requestHandler.Create)
	authed.GET("/notifications", notificationHandler.List)
	authed.GET("/notifications/pending-requests-count", notificationHandler.PendingRequestsCount)
	authed.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	authed.PUT("/notifications/mark-all-read", notificationHandler.MarkAllRead)
	authed.GET("/users/:id/branch", branchHandler.BranchOfUser)
	authed.GET("/branches/:id/balance", branchHandler.Balance)
	authed.GET("/branches/:id/transactions", branchHandler.Transactions)

	// --- Treasury-only routes ---
	treasury := api.Group("", authRequired, treasuryOnly)
	treasury.POST("/suppliers", supplierHandler.Create)
	treasury.PUT("/suppliers/:id", supplierHandler.Update)
	treasury.DELETE("/suppliers/:id", supplierHandler.Delete)
	treasury.POST("/supplier-fields", fieldHandler.Create)
	treasury.PUT("/supplier-fields/:id", fieldHandler.Rename)
	treasury.GET("/supplier-requests/pending", requestHandler.ListPending)
	treasury.PUT("/supplier-requests/:id", requestHandler.Resolve)
	treasury.GET("/users", userHandler.List)
	treasury.POST("/users/register", userHandler.Register)
	treasury.PUT("/users/:id", userHandler.Update)
	treasury.DELETE("/users/:id", userHandler.Delete)
	treasury.POST("/users/:id/request-password-reset", authHandler.RequestPasswordReset)
	treasury.GET("/dashboard/summary", dashboardHandler.Summary)
	treasury.GET("/reports/annual-cash-flow", dashboardHandler.AnnualCashFlow)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
