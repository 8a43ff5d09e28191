package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ItemCreator is the display-friendly identity of the user who created an item.
type ItemCreator struct {
	Name  string
	Email string
}

// Item is an inventory record.
type Item struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	Price     float64
	CreatedBy string
	Creator   *ItemCreator
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemInput carries the fields required to create an item.
type ItemInput struct {
	Name     string
	Category string
	Quantity int
	Price    float64
}

// Validate enforces the same constraints the store schema does.
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if !validPrice(in.Price) {
		return fmt.Errorf("%w: price must be a number >= 0", ErrValidation)
	}
	return nil
}

// ItemPatch carries a partial update; nil fields are left untouched.
type ItemPatch struct {
	Name     *string
	Category *string
	Quantity *int
	Price    *float64
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Quantity == nil && p.Price == nil
}

func (p ItemPatch) Validate() error {
	if p.Empty() {
		return fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return fmt.Errorf("%w: category must not be empty", ErrValidation)
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if p.Price != nil && !validPrice(*p.Price) {
		return fmt.Errorf("%w: price must be a number >= 0", ErrValidation)
	}
	return nil
}

func validPrice(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ItemPage is one page of a filtered item listing.
type ItemPage struct {
	Items       []Item
	TotalItems  int64
	CurrentPage int
	TotalPages  int
}
