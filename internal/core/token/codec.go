// Package token issues and verifies stateless HS256 session tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a shared secret.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for secret. A non-positive ttl falls back to DefaultTTL.
func NewCodec(secret []byte, ttl time.Duration, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Codec{secret: secret, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a token asserting p, expiring exactly TTL after issuance.
func (c *Codec) Issue(p domain.Principal) (string, error) {
	if p.ID == "" || !p.Role.Valid() {
		return "", fmt.Errorf("token: cannot issue for principal %q with role %q", p.ID, p.Role)
	}

	now := c.now().UTC().Truncate(time.Second)
	cl := claims{
		Name: p.Name,
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw. A valid signature on an
// expired token yields domain.ErrExpiredToken; every other failure yields
// domain.ErrInvalidToken.
func (c *Codec) Verify(raw string) (*domain.Session, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, c.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	role := domain.Role(cl.Role)
	if cl.Subject == "" || !role.Valid() {
		return nil, fmt.Errorf("%w: missing subject or role", domain.ErrInvalidToken)
	}

	s := &domain.Session{
		Principal: domain.Principal{ID: cl.Subject, Name: cl.Name, Role: role},
		TokenID:   cl.ID,
		ExpiresAt: cl.ExpiresAt.Time,
	}
	if cl.IssuedAt != nil {
		s.IssuedAt = cl.IssuedAt.Time
	}
	return s, nil
}

func (c *Codec) key(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return c.secret, nil
}
