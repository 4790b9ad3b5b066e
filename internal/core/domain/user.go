package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrTokenExpired = errors.New("token expired")
var ErrForbidden = errors.New("access forbidden")

// User models a registered credential holder. The password hash never leaves
// the process: it is excluded from every JSON projection.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AuthClaims is the identity resolved from a verified bearer token.
type AuthClaims struct {
	UserID string
	Role   string
}
