package ports

import (
	"context"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// AuthRepository is the credential store.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves many ids at once. Unknown ids are simply absent
	// from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// Create returns domain.ErrDuplicateIdentity when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
