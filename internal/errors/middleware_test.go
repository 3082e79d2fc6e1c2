package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		handlerErr error
		status     int
		errType    ErrorType
		message    string
		desc       string
	}{
		{ValidationError("reviewText is required"), http.StatusBadRequest, TypeValidation, "reviewText is required", "Structured error"},
		{fmt.Errorf("standard error"), http.StatusInternalServerError, TypeInternal, "internal server error", "Plain error"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, TypeRateLimited, "rate limit exceeded", "Echo error"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/analyze-sentiment", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var observed []ErrorType
			handler := Middleware(nil, func(et ErrorType) { observed = append(observed, et) })(func(c echo.Context) error {
				return tt.handlerErr
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Error)
			assert.Equal(t, tt.errType, resp.Type)
			assert.Equal(t, []ErrorType{tt.errType}, observed)
		})
	}
}

func TestMiddlewareWithNoError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(nil, nil)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
