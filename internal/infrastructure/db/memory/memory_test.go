package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

func TestUserStore_DuplicateEmail(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, &domain.User{Name: "B", Email: "a@example.com", Role: domain.RoleStaff})
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
	if _, err := s.FindByEmail(ctx, "A@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("email lookup must be case-sensitive, got %v", err)
	}
}

func TestItemStore_ListTieBreakFollowsDirection(t *testing.T) {
	s := NewItemStore()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 3; i++ {
		it, err := s.Create(ctx, &domain.Item{Name: "Same", Category: "c", Price: 1})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, it.ID)
	}

	q := domain.ItemQuery{Sort: domain.SortByPrice, Direction: domain.Ascending, Page: 1, Limit: 10}
	asc, total, err := s.List(ctx, q)
	if err != nil || total != 3 {
		t.Fatalf("List: total=%d err=%v", total, err)
	}
	for i, it := range asc {
		if it.ID != ids[i] {
			t.Fatalf("ascending: position %d has %s, want %s", i, it.ID, ids[i])
		}
	}

	q.Direction = domain.Descending
	desc, _, _ := s.List(ctx, q)
	for i, it := range desc {
		if it.ID != ids[len(ids)-1-i] {
			t.Fatalf("descending: position %d has %s, want %s", i, it.ID, ids[len(ids)-1-i])
		}
	}
}

func TestItemStore_ListOutOfRangePage(t *testing.T) {
	s := NewItemStore()
	ctx := context.Background()
	if _, err := s.Create(ctx, &domain.Item{Name: "Only", Category: "c"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, total, err := s.List(ctx, domain.ItemQuery{Sort: domain.SortByName, Page: 5, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil page with total 1, got %v total=%d", items, total)
	}
}

func TestRevocationStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewRevocationStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Revoke(ctx, "past", now.Add(-time.Minute))
	if revoked, _ := s.IsRevoked(ctx, "past"); revoked {
		t.Fatalf("already-expired token must not be stored")
	}

	_ = s.Revoke(ctx, "jti-1", now.Add(time.Hour))
	if revoked, _ := s.IsRevoked(ctx, "jti-1"); !revoked {
		t.Fatalf("expected jti-1 to be revoked")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := s.IsRevoked(ctx, "jti-1"); revoked {
		t.Fatalf("revocation must lapse with the token")
	}
}

func TestUserStore_FindByIDsSkipsRemoved(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()
	a, _ := s.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", Role: domain.RoleAdmin})
	b, _ := s.Create(ctx, &domain.User{Name: "B", Email: "b@example.com", Role: domain.RoleStaff})
	s.Remove(b.ID)

	got, err := s.FindByIDs(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("FindByIDs: %v", err)
	}
	if len(got) != 1 || got[a.ID] == nil {
		t.Fatalf("expected only %s, got %v", a.ID, got)
	}
}
