package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventrack/inventory-api/internal/api/metrics"
	"github.com/inventrack/inventory-api/internal/core/domain"
)

// RequireRole enforces role-based access control on top of Auth. A request
// without a session is rejected with 401, one with a disallowed role with 403.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var principal *domain.Principal
			if s, ok := SessionFrom(c); ok {
				principal = &s.Principal
			}

			if err := domain.RequireRole(principal, roles...); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
				}
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			return next(c)
		}
	}
}
