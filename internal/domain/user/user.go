package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
)

// User is the aggregate root for a registered user. Users own items and book
// items owned by others.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewBadRequestError("user name is required")
	}
	if email == "" {
		return nil, domain.NewBadRequestError("user email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u User) ID() uuid.UUID        { return u.id }
func (u User) Name() string         { return u.name }
func (u User) Email() string        { return u.email }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// Update applies partial updates to the user profile. Empty fields are left
// unchanged.
func (u *User) Update(name, email string) {
	if name != "" {
		u.name = name
	}
	if email != "" {
		u.email = email
	}
	u.updatedAt = time.Now().UTC()
}
