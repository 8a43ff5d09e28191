package ports

import (
	"context"
	"time"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
}

// TokenVerifier checks a session token and returns the session it asserts.
// Failures are domain.ErrInvalidToken or domain.ErrExpiredToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Session, error)
}

// RevocationStore is the server-side denylist of session token IDs.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
