package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inventrack/inventory-api/internal/core/domain"
	"github.com/inventrack/inventory-api/internal/core/ports"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = bcrypt.DefaultCost

// AuthService implements registration, login and session revocation.
type AuthService struct {
	repo        ports.AuthRepository
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	bcryptCost  int
	logger      zerolog.Logger
	onRevoke    func()
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithRevokeHook registers fn to run after each token actually written to
// the denylist.
func WithRevokeHook(fn func()) AuthOption {
	return func(s *AuthService) { s.onRevoke = fn }
}

// NewAuthService wires the credential store and token issuer. revocations
// may be nil, in which case Logout is a no-op.
func NewAuthService(
	repo ports.AuthRepository,
	tokens ports.TokenIssuer,
	revocations ports.RevocationStore,
	bcryptCost int,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	if bcryptCost < MinBcryptCost {
		bcryptCost = MinBcryptCost
	}
	if bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.MaxCost
	}
	s := &AuthService{
		repo:        repo,
		tokens:      tokens,
		revocations: revocations,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a credential record. The caller's right to register
// accounts is checked by the HTTP guard, not here.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	role := domain.RoleStaff
	if in.Role != "" {
		r, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicateIdentity
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, storeErr("register: lookup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", domain.ErrValidation)
		}
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, storeErr("register: create", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, storeErr("login: lookup", err)
	}

	// bcrypt compares in constant time.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("user_id", user.ID).Msg("login rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, user, nil
}

// Logout denylists the session's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if s.revocations == nil || session.TokenID == "" {
		return nil
	}
	if err := s.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return storeErr("logout", err)
	}
	if s.onRevoke != nil {
		s.onRevoke()
	}
	s.logger.Info().Str("user_id", session.Principal.ID).Str("token_id", session.TokenID).Msg("session revoked")
	return nil
}

// Me reloads the caller's credential record.
func (s *AuthService) Me(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storeErr("me", err)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is
// already registered. It is safe to run on every start.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.Register(ctx, ports.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(domain.RoleAdmin),
	})
	if errors.Is(err, domain.ErrDuplicateIdentity) {
		s.logger.Debug().Str("email", email).Msg("bootstrap admin already present")
		return nil
	}
	return err
}

// storeErr tags a collaborator failure as ErrStoreFailure while keeping
// the underlying cause in the chain.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
