package domain

import (
	"context"
	"time"
)

// User is a registered account. Records are never mutated after creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

// Credentials is the register/login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// AuthService registers and authenticates users.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	ValidateToken(token string) (string, error)
}

// TokenIssuer issues and validates session tokens for a user id.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
	Validate(token string) (string, error)
}
