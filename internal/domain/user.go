package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string // stored trimmed and lower-cased
	PasswordHash string // bcrypt
	TeamName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepository interface {
	// Create returns ErrConflict when the email is already registered.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}
