package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inventrack/inventory-api/internal/core/domain"
	"github.com/inventrack/inventory-api/internal/core/ports"
	"github.com/inventrack/inventory-api/internal/core/token"
)

type stubAuthRepo struct {
	users     map[string]*domain.User
	seq       int
	findErr   error
	byIDsErr  error
	byIDsHits int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.byIDsHits++
	if r.byIDsErr != nil {
		return nil, r.byIDsErr
	}
	out := make(map[string]*domain.User)
	for _, id := range ids {
		for _, u := range r.users {
			if u.ID == id {
				out[id] = cloneUser(u)
			}
		}
	}
	return out, nil
}

type stubRevocations struct {
	revoked map[string]time.Time
	err     error
}

func (s *stubRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	if s.revoked == nil {
		s.revoked = make(map[string]time.Time)
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, s.err
}

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return codec
}

func newTestAuthService(t *testing.T, repo *stubAuthRepo, rev ports.RevocationStore) (*AuthService, *token.Codec) {
	t.Helper()
	codec := newTestCodec(t)
	return NewAuthService(repo, codec, rev, MinBcryptCost, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123", Role: "admin",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected user with id, got %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(user.PasswordHash)); cost < MinBcryptCost {
		t.Fatalf("expected cost >= %d, got %d", MinBcryptCost, cost)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_DefaultsToStaff(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Sam", Email: "sam@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleStaff {
		t.Fatalf("expected staff, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	cases := []ports.RegisterInput{
		{Name: "", Email: "a@example.com", Password: "pw"},
		{Name: "A", Email: "  ", Password: "pw"},
		{Name: "A", Email: "a@example.com", Password: ""},
		{Name: "A", Email: "a@example.com", Password: "pw", Role: "superuser"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	in := ports.RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "pass"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	in.Password = "pass2"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.New("connection reset")
	svc, _ := newTestAuthService(t, repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "C", Email: "c@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc, codec := newTestAuthService(t, repo, nil)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret", Role: "admin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	session, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	want := domain.Principal{ID: registered.ID, Name: "Carol", Role: domain.RoleAdmin}
	if session.Principal != want {
		t.Fatalf("expected principal %+v, got %+v", want, session.Principal)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	rev := &stubRevocations{}
	svc, codec := newTestAuthService(t, newStubAuthRepo(), rev)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "pw"})
	tok, _, err := svc.Login(context.Background(), "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	session, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if err := svc.Logout(context.Background(), *session); err != nil {
		t.Fatalf("logout: %v", err)
	}
	until, ok := rev.revoked[session.TokenID]
	if !ok {
		t.Fatalf("expected token %s to be revoked", session.TokenID)
	}
	if !until.Equal(session.ExpiresAt) {
		t.Fatalf("expected revocation until %v, got %v", session.ExpiresAt, until)
	}
}

func TestAuthService_Logout_StoreFailure(t *testing.T) {
	rev := &stubRevocations{err: errors.New("redis down")}
	svc, _ := newTestAuthService(t, newStubAuthRepo(), rev)

	err := svc.Logout(context.Background(), domain.Session{TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)})
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
}

func TestAuthService_Logout_WithoutStoreIsNoop(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	if err := svc.Logout(context.Background(), domain.Session{TokenID: "jti"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAuthService_Logout_RevokeHookCountsOnlyWrites(t *testing.T) {
	var revoked int
	hook := WithRevokeHook(func() { revoked++ })
	live := domain.Session{TokenID: "jti", ExpiresAt: time.Now().Add(time.Hour)}

	noStore := NewAuthService(newStubAuthRepo(), newTestCodec(t), nil, MinBcryptCost, zerolog.Nop(), hook)
	_ = noStore.Logout(context.Background(), live)

	withStore := NewAuthService(newStubAuthRepo(), newTestCodec(t), &stubRevocations{}, MinBcryptCost, zerolog.Nop(), hook)
	_ = withStore.Logout(context.Background(), domain.Session{ExpiresAt: live.ExpiresAt})

	failing := NewAuthService(newStubAuthRepo(), newTestCodec(t), &stubRevocations{err: errors.New("redis down")}, MinBcryptCost, zerolog.Nop(), hook)
	_ = failing.Logout(context.Background(), live)

	if revoked != 0 {
		t.Fatalf("expected no revocations counted, got %d", revoked)
	}

	if err := withStore.Logout(context.Background(), live); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked != 1 {
		t.Fatalf("expected 1 revocation counted, got %d", revoked)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubAuthRepo(), nil)

	u, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Fay", Email: "fay@example.com", Password: "pw"})
	got, err := svc.Me(context.Background(), u.Principal())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if got.Email != "fay@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.Me(context.Background(), domain.Principal{ID: "missing", Role: domain.RoleStaff}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_EnsureAdmin_Idempotent(t *testing.T) {
	repo := newStubAuthRepo()
	svc, _ := newTestAuthService(t, repo, nil)

	for i := 0; i < 2; i++ {
		if err := svc.EnsureAdmin(context.Background(), "Root", "root@example.com", "changeme"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single admin, got %d users", len(repo.users))
	}
	if repo.users["root@example.com"].Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", repo.users["root@example.com"].Role)
	}
}

func TestNewAuthService_ClampsCost(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), nil, nil, 4, zerolog.Nop())
	if svc.bcryptCost != MinBcryptCost {
		t.Fatalf("expected cost %d, got %d", MinBcryptCost, svc.bcryptCost)
	}
}
