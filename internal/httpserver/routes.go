package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "github.com/tsawler/reviewsense/internal/errors"
	"github.com/tsawler/reviewsense/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.requestIDMiddleware())
	s.echo.Use(s.requestLoggerMiddleware())
	if s.httpMetrics != nil {
		s.echo.Use(s.httpMetrics.Middleware())
	}
	s.echo.Use(apperrors.Middleware(s.logger, s.observeError))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	if s.config.BodyLimit != "" {
		s.echo.Use(middleware.BodyLimit(s.config.BodyLimit))
	}

	s.registerHealthRoutes()
	s.registerAPIRoutes()

	if s.registry != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	}
}

func (s *Server) registerAPIRoutes() {
	api := s.echo.Group("/api")
	if s.config.RateLimit > 0 {
		api.Use(s.rateLimiterMiddleware())
	}
	api.POST("/analyze-sentiment", s.handleAnalyzeSentiment)
	api.POST("/analyze-sentences", s.handleAnalyzeSentences)
}

func (s *Server) observeError(t apperrors.ErrorType) {
	if s.httpMetrics != nil {
		s.httpMetrics.ObserveError(string(t))
	}
}
