package ports

import (
	"context"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty defaults to staff
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, session domain.Session) error
	Me(ctx context.Context, principal domain.Principal) (*domain.User, error)
}
