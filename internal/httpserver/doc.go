// Package httpserver exposes the reviewsense analyzer over HTTP using echo.
//
// Routes:
//
//	POST /api/analyze-sentiment   classify one review
//	POST /api/analyze-sentences   overall result plus one result per sentence
//	GET  /health                  always 200, reports model_loaded
//	GET  /health/live             liveness with uptime
//	GET  /health/ready            503 until both artifacts are loaded
//	GET  /version                 build information
//	GET  /metrics                 Prometheus metrics, when a registry is set
//
// Errors are written as JSON by the internal/errors middleware.
package httpserver
