package domain

import (
	"context"
	"time"
)

// User represents a registered account that can post products and
// exchange messages about them.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Create and Update run their uniqueness checks and the subsequent
// write inside a single transaction.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	// Delete removes a user and, through cascade, their products and
	// messages. It returns the pre-deletion record.
	Delete(ctx context.Context, id int64) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
