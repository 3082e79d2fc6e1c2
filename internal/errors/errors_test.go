package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("reviewText is required")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "reviewText is required", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "reviewText is required")
}

func TestUnavailableError(t *testing.T) {
	err := UnavailableError("model not loaded")

	assert.Equal(t, TypeUnavailable, err.Type)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
}

func TestRateLimitedError(t *testing.T) {
	err := RateLimitedError("rate limit exceeded")

	assert.Equal(t, TypeRateLimited, err.Type)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus())
	assert.Equal(t, ErrorResponse{Error: "rate limit exceeded", Type: TypeRateLimited, Context: map[string]any{}}, err.ToResponse())
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("encoder failed")
	err := InternalError("failed to write response", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "encoder failed")
	assert.True(t, errors.Is(err, cause))
}

func TestInternalErrorWithoutCause(t *testing.T) {
	err := InternalError("something went wrong", nil)

	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestWithContext(t *testing.T) {
	err := ValidationError("bad rating").WithContext("rating", 9)

	resp := err.ToResponse()
	assert.Equal(t, "bad rating", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, 9, resp.Context["rating"])

	empty := &Error{Type: TypeValidation}
	empty.WithContext("k", "v")
	assert.Equal(t, "v", empty.Context["k"])
}

func TestAsStructuredError(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))

	original := ValidationError("invalid")
	wrapped := fmt.Errorf("handler: %w", original)
	assert.Same(t, original, AsStructuredError(wrapped))

	plain := AsStructuredError(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, TypeInternal, plain.Type)
	assert.Equal(t, "internal server error", plain.Message)
}

func TestWrapHTTPError(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorType
	}{
		{http.StatusBadRequest, TypeValidation},
		{http.StatusNotFound, TypeNotFound},
		{http.StatusMethodNotAllowed, TypeMethodNotAllowed},
		{http.StatusRequestEntityTooLarge, TypeTooLarge},
		{http.StatusTooManyRequests, TypeRateLimited},
		{http.StatusServiceUnavailable, TypeUnavailable},
		{http.StatusTeapot, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := WrapHTTPError(echo.NewHTTPError(tt.code))
			assert.Equal(t, tt.expected, err.Type)
			assert.NotEmpty(t, err.Message)
		})
	}

	custom := WrapHTTPError(echo.NewHTTPError(http.StatusBadRequest, "bad json"))
	assert.Equal(t, "bad json", custom.Message)
}
