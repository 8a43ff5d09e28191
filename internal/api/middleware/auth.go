package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventrack/inventory-api/internal/api/metrics"
	"github.com/inventrack/inventory-api/internal/core/domain"
	"github.com/inventrack/inventory-api/internal/core/ports"
)

// sessionKey is the echo context key holding the caller's *domain.Session.
const sessionKey = "session"

// Auth validates the bearer token and injects the session into context.
// revocations may be nil to disable the denylist check.
func Auth(verifier ports.TokenVerifier, revocations ports.RevocationStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					metrics.AuthRejectionsTotal.WithLabelValues("expired_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrExpiredToken.Error()).SetInternal(err)
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrInvalidToken.Error()).SetInternal(err)
			}

			if revocations != nil && session.TokenID != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), session.TokenID)
				if err != nil {
					// Denylist outages fail open.
					log.Warn().Err(err).Str("token_id", session.TokenID).Msg("revocation check failed")
				} else if revoked {
					metrics.AuthRejectionsTotal.WithLabelValues("revoked_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Auth, if any.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// WithSession stores s in c as Auth would. It is exported for handlers'
// tests that bypass the middleware chain.
func WithSession(c echo.Context, s *domain.Session) {
	c.Set(sessionKey, s)
}
