package ports

import (
	"context"

	"github.com/inventrack/inventory-api/internal/core/domain"
)

// ItemService defines the inventory use cases. Mutations take the calling
// principal and check its role before touching the store.
type ItemService interface {
	List(ctx context.Context, q domain.ItemQuery) (*domain.ItemPage, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	Create(ctx context.Context, principal *domain.Principal, in domain.ItemInput) (*domain.Item, error)
	Update(ctx context.Context, principal *domain.Principal, id string, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, principal *domain.Principal, id string) error
}
