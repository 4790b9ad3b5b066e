package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SearchFilter holds the optional catalog filters. Name and Category match by
// case-sensitive substring containment; price bounds are inclusive. A zero
// filter matches the whole catalog.
type SearchFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// IsEmpty reports whether no filter is set.
func (f SearchFilter) IsEmpty() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// UpdateFields carries a partial update; nil fields are left untouched.
type UpdateFields struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// IsEmpty reports whether no field is set.
func (u UpdateFields) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Price == nil && u.Quantity == nil
}

// SweetRepository defines the interface for catalog persistence.
//
// AdjustQuantity applies a stock delta as a single conditional storage
// operation: for a negative delta the update only matches while the stored
// quantity covers it, so concurrent purchases can never drive stock below
// zero. It returns domain.ErrInsufficientStock when the guard fails and
// domain.ErrSweetNotFound when the id does not exist.
type SweetRepository interface {
	Insert(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	FindMany(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	AdjustQuantity(ctx context.Context, id string, delta int64) (*domain.Sweet, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
}
