package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a principal may hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole converts a raw string into a Role. Anything outside the
// enumeration is rejected with ErrValidation.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is a credential record owned by the credential store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the redacted identity of u.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   string
	Name string
	Role Role
}

// Session is a verified token: the principal it asserts plus the metadata
// needed to revoke it.
type Session struct {
	Principal Principal
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
