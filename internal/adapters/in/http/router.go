package http

import (
	"context"
	"log/slog"
	"net/http"

	"orderflow/internal/generated/servers"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// APIPrefix is where the workflow routes are mounted.
const APIPrefix = "/api/v1"

type RouterConfig struct {
	Server  *Server
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Health is called by GET /health; nil means always healthy.
	Health func(ctx context.Context) error
}

// NewRouter assembles the echo instance: ambient routes at the root and
// the workflow API behind identity and OpenAPI request validation.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger.With("component", "http")

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler(logger)
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", healthHandler(cfg.Health))
	e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	if err := RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	api := e.Group(APIPrefix, IdentityMiddleware(), validator)
	servers.RegisterHandlers(api, cfg.Server)

	return e, nil
}

func healthHandler(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			if err := check(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
