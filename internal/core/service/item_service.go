package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/inventrack/inventory-api/internal/core/domain"
	"github.com/inventrack/inventory-api/internal/core/ports"
)

type ItemService struct {
	items  ports.ItemRepository
	users  ports.AuthRepository
	logger zerolog.Logger
}

func NewItemService(items ports.ItemRepository, users ports.AuthRepository, logger zerolog.Logger) *ItemService {
	return &ItemService{items: items, users: users, logger: logger}
}

// List returns one page of items matching q, with creators resolved.
func (s *ItemService) List(ctx context.Context, q domain.ItemQuery) (*domain.ItemPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		return nil, fmt.Errorf("%w: page size must be positive", domain.ErrValidation)
	}

	items, total, err := s.items.List(ctx, q)
	if err != nil {
		return nil, storeErr("list items", err)
	}
	if items == nil {
		items = []domain.Item{}
	}

	s.attachCreators(ctx, items)

	return &domain.ItemPage{
		Items:       items,
		TotalItems:  total,
		CurrentPage: q.Page,
		TotalPages:  totalPages(total, q.Limit),
	}, nil
}

// Get returns a single item with its creator resolved.
func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, itemErr("get item", err)
	}
	return s.withCreator(ctx, item), nil
}

// Create stores a new item owned by principal.
func (s *ItemService) Create(ctx context.Context, principal *domain.Principal, in domain.ItemInput) (*domain.Item, error) {
	if err := domain.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.items.Create(ctx, &domain.Item{
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Quantity:  in.Quantity,
		Price:     in.Price,
		CreatedBy: principal.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, storeErr("create item", err)
	}

	s.logger.Info().Str("item_id", created.ID).Str("user_id", principal.ID).Msg("item created")
	return s.withCreator(ctx, created), nil
}

// Update applies patch to the item identified by id.
func (s *ItemService) Update(ctx context.Context, principal *domain.Principal, id string, patch domain.ItemPatch) (*domain.Item, error) {
	if err := domain.RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		v := strings.TrimSpace(*patch.Name)
		patch.Name = &v
	}
	if patch.Category != nil {
		v := strings.TrimSpace(*patch.Category)
		patch.Category = &v
	}

	updated, err := s.items.Update(ctx, id, patch)
	if err != nil {
		return nil, itemErr("update item", err)
	}

	s.logger.Info().Str("item_id", id).Str("user_id", principal.ID).Msg("item updated")
	return s.withCreator(ctx, updated), nil
}

// Delete removes the item identified by id.
func (s *ItemService) Delete(ctx context.Context, principal *domain.Principal, id string) error {
	if err := domain.RequireRole(principal, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return itemErr("delete item", err)
	}

	s.logger.Info().Str("item_id", id).Str("user_id", principal.ID).Msg("item deleted")
	return nil
}

// attachCreators fills Item.Creator with one batched lookup. Unresolvable
// creators are left nil; a failed lookup never fails the caller.
func (s *ItemService) attachCreators(ctx context.Context, items []domain.Item) {
	if len(items) == 0 {
		return
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.CreatedBy == "" {
			continue
		}
		if _, ok := seen[it.CreatedBy]; ok {
			continue
		}
		seen[it.CreatedBy] = struct{}{}
		ids = append(ids, it.CreatedBy)
	}
	if len(ids) == 0 {
		return
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Int("creators", len(ids)).Msg("creator lookup failed, listing without creators")
		return
	}

	for i := range items {
		if u, ok := users[items[i].CreatedBy]; ok && u != nil {
			items[i].Creator = &domain.ItemCreator{Name: u.Name, Email: u.Email}
		}
	}
}

func (s *ItemService) withCreator(ctx context.Context, item *domain.Item) *domain.Item {
	one := []domain.Item{*item}
	s.attachCreators(ctx, one)
	return &one[0]
}

func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func itemErr(op string, err error) error {
	if errors.Is(err, domain.ErrItemNotFound) {
		return err
	}
	return storeErr(op, err)
}
