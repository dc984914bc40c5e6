package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds what NewRouter wires together.
type RouterConfig struct {
	Server   *Server
	Verifier *TokenVerifier
	Doc      *openapi3.T
	Logger   *slog.Logger
}

// NewRouter builds the echo instance: service endpoints under /api/v1 behind
// bearer authentication, plus /health, /metrics and /swagger/*.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger.With("component", "http")

	validate, err := ValidateRequests(cfg.Doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(cfg.Doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.Validator = NewStructValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(observeRequests)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s := cfg.Server
	api := e.Group("/api/v1", Authenticate(cfg.Verifier))

	managers := RequireRoles(user.RoleManager)

	api.POST("/orders", s.CreateOrder, RequireRoles(user.RoleCustomer, user.RoleManager), validate)
	api.GET("/orders", s.ListOrders, validate)
	api.GET("/orders/active", s.GetActiveOrders, RequireRoles(user.RoleManager, user.RoleDriver), validate)
	api.GET("/orders/:orderId", s.GetOrder, validate)
	api.PATCH("/orders/status-bulk", s.UpdateOrdersStatus, managers, validate)
	api.PATCH("/orders/assign-driver-bulk", s.AssignOrdersToDriver, managers, validate)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus,
		RequireRoles(user.RoleDriver, user.RoleWarehouse, user.RoleManager), validate)
	api.PATCH("/orders/:orderId/assign-driver", s.AssignOrderToDriver, managers, validate)
	api.POST("/warehouse/scan", s.ScanParcel, RequireRoles(user.RoleWarehouse, user.RoleManager), validate)
	api.GET("/tracking/:orderId", s.GetOrderTracking, validate)
	api.GET("/drivers", s.GetDrivers, managers, validate)
	api.GET("/manager/overview", s.GetOrdersOverview, managers, validate)

	return e, nil
}

func requestLoggerConfig(logger *slog.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			} else if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	}
}

func observeRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		code := c.Response().Status
		if err != nil {
			if httpErr, ok := err.(*echo.HTTPError); ok {
				code = httpErr.Code
			}
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request().Method, route, code, time.Since(start))
		return err
	}
}
