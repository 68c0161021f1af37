package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"checkout/internal/adapters/in/http/api"
	"checkout/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries what NewRouter needs besides the server.
type RouterConfig struct {
	Authenticator Authenticator
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Logger        *zap.Logger
}

// NewRouter builds the echo instance: recovery, access log and request
// counters for every route; bearer authentication and contract validation
// for /api/v1; plus /health and /metrics.
func NewRouter(server *Server, cfg RouterConfig) (*echo.Echo, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := RequestValidator(swagger, publicRoute)
	if err != nil {
		return nil, err
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	logger := cfg.Logger.Named("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(accessLog(logger, cfg.Metrics))
	e.Use(cfg.Authenticator.Middleware(publicRoute))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api.RegisterHandlers(e, server)

	return e, nil
}

func accessLog(logger *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			m.HTTPRequest(v.Method, v.RoutePath, strconv.Itoa(v.Status))

			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Error("request", fields...)
			} else {
				logger.Debug("request", fields...)
			}
			return nil
		},
	})
}

// errorHandler renders echo errors (unknown routes, parameter binding) with
// the same body as handler errors.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.Error("unhandled error", zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, api.Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}
