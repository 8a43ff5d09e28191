package ports

import (
	"context"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// ItemRepository is the inventory store.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// FindByID returns domain.ErrItemNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	Update(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id string) error
	// List returns the requested page of items matching q and the total
	// number of matches ignoring pagination.
	List(ctx context.Context, q domain.ItemQuery) ([]domain.Item, int64, error)
}
