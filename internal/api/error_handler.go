package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// errorResponse is the envelope every failed request renders.
type errorResponse struct {
	Error string `json:"error"`
}

// statusByKind is checked in order; the first errors.Is match wins.
// ErrExpiredToken precedes ErrInvalidToken so the more specific message is kept.
var statusByKind = []struct {
	kind   error
	status int
}{
	{domain.ErrDuplicateIdentity, http.StatusConflict},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrItemNotFound, http.StatusNotFound},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
}

// NewHTTPErrorHandler renders domain errors, echo errors and unexpected
// failures as {"error": "..."}. Causes of 5xx responses are logged, never sent.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", code).
				Msg(msg)
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation details are safe to echo back and tell the caller what to fix.
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest, err.Error()
	}
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return m.status, m.kind.Error()
		}
	}
	if errors.Is(err, domain.ErrStoreFailure) {
		return http.StatusInternalServerError, domain.ErrStoreFailure.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
