package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// AddSweetInput carries all data needed to create a new catalog item.
type AddSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// SweetService defines use-case operations on the catalog.
type SweetService interface {
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	Add(ctx context.Context, input AddSweetInput) (*domain.Sweet, error)
	Purchase(ctx context.Context, id string, quantity int64) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, quantity int64) (*domain.Sweet, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
}
