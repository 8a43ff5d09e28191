// Package memory provides in-process implementations of the store ports.
// They back STORE=memory for local runs and the HTTP-level tests, and
// follow the same filtering, ordering and error semantics as the Mongo
// adapters.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// UserStore is an in-memory credential store.
type UserStore struct {
	mu      sync.RWMutex
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(s.byID[id]), nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := s.byID[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateIdentity
	}
	s.seq++
	u := cloneUser(user)
	u.ID = objectID(s.seq)
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return cloneUser(u), nil
}

// Remove deletes a user record. The core never deletes credentials; this
// exists to model a creator that has gone away.
func (s *UserStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.byID[id]; ok {
		delete(s.byEmail, u.Email)
		delete(s.byID, id)
	}
}

// ItemStore is an in-memory inventory store.
type ItemStore struct {
	mu    sync.RWMutex
	seq   int
	items map[string]*domain.Item
	now   func() time.Time
}

func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[string]*domain.Item), now: time.Now}
}

func (s *ItemStore) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	it := *item
	it.ID = objectID(s.seq)
	it.Creator = nil
	s.items[it.ID] = &it
	out := it
	return &out, nil
}

func (s *ItemStore) FindByID(_ context.Context, id string) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	out := *it
	return &out, nil
}

func (s *ItemStore) Update(_ context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Category != nil {
		it.Category = *patch.Category
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		it.Price = *patch.Price
	}
	it.UpdatedAt = s.now().UTC()
	out := *it
	return &out, nil
}

func (s *ItemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

// List filters, orders and paginates like the Mongo adapter: conjunctive
// filters, case-insensitive substrings, inclusive ranges, and the sort
// field followed by id in the same direction.
func (s *ItemStore) List(_ context.Context, q domain.ItemQuery) ([]domain.Item, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		if matches(it, q) {
			matched = append(matched, *it)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		c := compare(&matched[i], &matched[j], q.Sort)
		if c == 0 {
			c = strings.Compare(matched[i].ID, matched[j].ID)
		}
		if q.Direction == domain.Ascending {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	skip := q.Skip()
	if skip >= total || q.Limit < 1 {
		return []domain.Item{}, total, nil
	}
	end := min(skip+int64(q.Limit), total)
	return matched[skip:end], total, nil
}

func matches(it *domain.Item, q domain.ItemQuery) bool {
	for field, pattern := range q.TextFilters {
		var v string
		switch field {
		case domain.TextName:
			v = it.Name
		case domain.TextCategory:
			v = it.Category
		default:
			continue
		}
		if !strings.Contains(strings.ToLower(v), strings.ToLower(pattern)) {
			return false
		}
	}
	for field, r := range q.RangeFilters {
		var v float64
		switch field {
		case domain.RangePrice:
			v = it.Price
		case domain.RangeQuantity:
			v = float64(it.Quantity)
		default:
			continue
		}
		if r.Min != nil && v < *r.Min {
			return false
		}
		if r.Max != nil && v > *r.Max {
			return false
		}
	}
	return true
}

func compare(a, b *domain.Item, f domain.SortField) int {
	switch f {
	case domain.SortByName:
		return strings.Compare(a.Name, b.Name)
	case domain.SortByPrice:
		return cmpFloat(a.Price, b.Price)
	case domain.SortByQuantity:
		return cmpFloat(float64(a.Quantity), float64(b.Quantity))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// RevocationStore is an in-memory token denylist.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *RevocationStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !until.After(s.now()) {
		return nil
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// objectID renders seq as a 24-character hex id, matching the shape of a
// Mongo ObjectID and sorting in creation order.
func objectID(seq int) string {
	return fmt.Sprintf("%024x", seq)
}
