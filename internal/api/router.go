package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/admindash/console/internal/api/handler"
	"github.com/admindash/console/internal/api/middleware"
	"github.com/admindash/console/internal/core/ports"
)

// Deps is everything the console router needs.
type Deps struct {
	Session ports.Session
	API     ports.DashboardAPI
	Probes  map[string]handler.Pinger
	Log     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.GuardWithConfig(d.Session, middleware.GuardConfig{
		Skipper: middleware.SkipPaths("/health", "/health/ready", "/metrics", "/logout"),
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Session, d.API)
	dashboardHandler := handler.NewDashboardHandler(d.API, d.Session)
	userHandler := handler.NewUserHandler(d.API)
	productHandler := handler.NewProductHandler(d.API)
	orderHandler := handler.NewOrderHandler(d.API)

	// --- Auth screen ---
	e.GET("/auth", authHandler.Screen)
	e.POST("/auth", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Views ---
	e.GET("/", dashboardHandler.Overview)
	e.GET("/analytics", dashboardHandler.Analytics)
	e.GET("/sales", dashboardHandler.Sales)
	e.GET("/settings", dashboardHandler.Settings)

	users := e.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	products := e.Group("/products")
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	orders := e.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	// --- Health probes and metrics (outside the guard) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Probes)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the token store reachable?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// requestLogger routes echo's access log through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
