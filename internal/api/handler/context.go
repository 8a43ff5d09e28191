package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventrack/inventory-api/internal/api/middleware"
	"github.com/inventrack/inventory-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// fails fast with 401 when the route was mounted without it.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok || s.Principal.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return s, nil
}

// ctxPrincipal is ctxSession for handlers that only need the identity.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	s, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	p := s.Principal
	return &p, nil
}
