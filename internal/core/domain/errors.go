package domain

import "errors"

// Each failure surfaced by the core maps to exactly one of these kinds.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateIdentity  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("admins only")
	ErrStoreFailure       = errors.New("store failure")
)

// IsUnauthenticated reports whether err means the caller has no valid session.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrUnauthenticated)
}
