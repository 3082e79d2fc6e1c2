package httpserver

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	apperrors "github.com/tsawler/reviewsense/internal/errors"
	"github.com/tsawler/reviewsense/internal/logging"
)

const rateLimiterExpiry = 5 * time.Minute

// requestIDMiddleware honours an incoming X-Request-Id or generates one, and
// stores it in the request context for the logging handler.
func (s *Server) requestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			ctx := logging.WithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
		},
	})
}

func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	})
}

// rateLimiterMiddleware limits each client IP. The limiter reports denials
// through echo's HTTPErrorHandler, so the deny handler writes the structured
// body and records the error itself.
func (s *Server) rateLimiterMiddleware() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(s.config.RateLimit),
			Burst:     s.config.RateBurst,
			ExpiresIn: rateLimiterExpiry,
		},
	)
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			appErr := apperrors.RateLimitedError("rate limit exceeded")
			s.observeError(appErr.Type)
			s.logger.WarnContext(c.Request().Context(), "Rate limit exceeded", "client", identifier)
			return c.JSON(appErr.HTTPStatus(), appErr.ToResponse())
		},
	})
}
