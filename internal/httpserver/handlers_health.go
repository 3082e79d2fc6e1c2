package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tsawler/reviewsense/internal/version"
)

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

// handleHealth always answers 200 and reports whether the trained model is
// serving; the fallback keeps the API usable either way.
func (s *Server) handleHealth(c echo.Context) error {
	response := map[string]any{
		"status":       "healthy",
		"model_loaded": s.analyzer.Availability().Ready(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write health response: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status": "ok",
		"uptime": s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) handleReadiness(c echo.Context) error {
	availability := s.analyzer.Availability()

	failed := ""
	switch {
	case !availability.VocabularyReady():
		failed = "vocabulary"
	case !availability.ClassifierReady():
		failed = "classifier"
	}

	if failed != "" {
		response := map[string]any{
			"status":       "unhealthy",
			"failed_check": failed,
			"breaker":      s.analyzer.BreakerState(),
		}
		if err := c.JSON(http.StatusServiceUnavailable, response); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	response := map[string]any{
		"status":  "ready",
		"breaker": s.analyzer.BreakerState(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
