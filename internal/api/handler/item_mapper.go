package handler

import (
	"github.com/inventrack/inventory-api/internal/core/domain"
)

// --- Request → Service input ---

func toItemInput(req createItemRequest) domain.ItemInput {
	in := domain.ItemInput{Name: req.Name, Category: req.Category}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

func toItemPatch(req updateItemRequest) domain.ItemPatch {
	return domain.ItemPatch{
		Name:     req.Name,
		Category: req.Category,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
}

// --- Service result → HTTP response ---

func toItemResponse(it *domain.Item) itemResponse {
	resp := itemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		Price:     it.Price,
		CreatedBy: creatorResponse{ID: it.CreatedBy},
		CreatedAt: it.CreatedAt.UTC(),
		UpdatedAt: it.UpdatedAt.UTC(),
	}
	if it.Creator != nil {
		resp.CreatedBy.Name = it.Creator.Name
		resp.CreatedBy.Email = it.Creator.Email
	}
	return resp
}

func toItemPageResponse(p *domain.ItemPage) itemPageResponse {
	items := make([]itemResponse, len(p.Items))
	for i := range p.Items {
		items[i] = toItemResponse(&p.Items[i])
	}
	return itemPageResponse{
		Items:       items,
		TotalItems:  p.TotalItems,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}
