package domain

import (
	"context"
)

// User is owned by the auth subsystem; this service only reads it
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type AuthUsecase interface {
	// GetCurrentUser resolves the token subject to a stored user
	GetCurrentUser(ctx context.Context, username string) (*User, error)
}
