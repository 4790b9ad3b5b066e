package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
// Create must be atomic with respect to the username uniqueness check:
// a concurrent duplicate insert returns domain.ErrUserExists, never a
// second account.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
