package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/werkbank/workshop-system/docs"
	"github.com/werkbank/workshop-system/internal/api/handler"
	"github.com/werkbank/workshop-system/internal/api/middleware"
	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/infrastructure/http/handlers"
)

// Services bundles the use cases the HTTP layer depends on.
type Services struct {
	Authenticator ports.Authenticator
	Auth          ports.AuthService
	Employees     ports.EmployeeService
	Customers     ports.CustomerService
	Workorders    ports.WorkorderService
	Tasks         ports.TaskService
	Portal        ports.PortalService
	Activity      ports.ActivityService
}

// Options configures NewRouter.
type Options struct {
	Log          zerolog.Logger
	CORSOrigins  []string
	HealthChecks []handlers.Check
	// Metrics mounts the Prometheus middleware and /metrics. Off in tests,
	// where the default registry would reject duplicate collectors.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			middleware.HeaderOrgID, handler.HeaderIdempotencyKey,
		},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
	}))
	if opts.Metrics {
		e.Use(echoprometheus.NewMiddleware("workshop"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	employeeHandler := handler.NewEmployeeHandler(svc.Employees)
	customerHandler := handler.NewCustomerHandler(svc.Customers)
	workorderHandler := handler.NewWorkorderHandler(svc.Workorders, svc.Activity)
	taskHandler := handler.NewTaskHandler(svc.Tasks)
	portalHandler := handler.NewPortalHandler(svc.Portal)
	authMiddleware := middleware.Auth(svc.Authenticator)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "API is running"})
	})
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/portal/:workorder_id", portalHandler.Get)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Authenticated routes ---
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	employees := e.Group("/employees", authMiddleware)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.POST("", employeeHandler.Create, middleware.RequireAdmin())
	employees.PATCH("/:id", employeeHandler.Update)

	customers := e.Group("/customers", authMiddleware)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.POST("", customerHandler.Create)
	customers.PATCH("/:id", customerHandler.Update)

	workorders := e.Group("/workorders", authMiddleware)
	workorders.GET("", workorderHandler.List)
	workorders.GET("/:id", workorderHandler.Get)
	workorders.GET("/:id/activity", workorderHandler.Activity)
	workorders.POST("", workorderHandler.Create)
	workorders.PATCH("/:id", workorderHandler.Update)

	tasks := e.Group("/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create)
	tasks.PATCH("/:id", taskHandler.Update)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
