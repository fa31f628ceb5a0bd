package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig wires the API into an echo instance.
type RouterConfig struct {
	Server       ServerInterface
	Tokens       TokenParser
	Accounts     AccountProvider
	Metrics      *Metrics
	Gatherer     prometheus.Gatherer
	Logger       *slog.Logger
	AllowOrigins []string
}

// NewRouter builds the echo instance with every middleware and route.
func NewRouter(ctx context.Context, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	e.Use(requestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}
	e.Use(Authenticate(cfg.Tokens, cfg.Accounts))
	e.Use(validate)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	mountSwagger(e)

	RegisterHandlers(e, cfg.Server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request",
					slog.Group("http", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	})
}
