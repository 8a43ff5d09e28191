package handler

import "time"

// --- Request types ---

type createItemRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Category string   `json:"category" validate:"required,max=100"`
	Quantity *int     `json:"quantity" validate:"required,gte=0"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
}

// updateItemRequest is a partial update; omitted fields are left unchanged.
type updateItemRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category *string  `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// --- Response types ---

type creatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type itemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	CreatedBy creatorResponse `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type itemPageResponse struct {
	Items       []itemResponse `json:"items"`
	TotalItems  int64          `json:"totalItems"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}

type deleteItemResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
