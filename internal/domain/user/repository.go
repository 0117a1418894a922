package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	// FindByID retrieves a user by id, failing with a not-found error if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email. Returns (nil, nil) when no user
	// has the given email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
