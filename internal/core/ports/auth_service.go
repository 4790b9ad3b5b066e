package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	VerifyToken(token string) (*domain.AuthClaims, error)
}
