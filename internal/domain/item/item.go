package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
)

// Item is the aggregate root for a shareable item. The available flag gates
// booking creation; bookings made while the item was available stay valid
// after the owner toggles it off.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	requestID   *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates a new item owned by the given user.
func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewBadRequestError("item owner is required")
	}
	if name == "" {
		return nil, domain.NewBadRequestError("item name is required")
	}
	if description == "" {
		return nil, domain.NewBadRequestError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	requestID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i Item) ID() uuid.UUID         { return i.id }
func (i Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i Item) Name() string          { return i.name }
func (i Item) Description() string   { return i.description }
func (i Item) Available() bool       { return i.available }
func (i Item) RequestID() *uuid.UUID { return i.requestID }
func (i Item) CreatedAt() time.Time  { return i.createdAt }
func (i Item) UpdatedAt() time.Time  { return i.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the item belongs to the given user.
func (i Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Update applies partial updates. Empty strings and a nil available flag
// leave the corresponding field unchanged.
func (i *Item) Update(name, description string, available *bool) {
	if name != "" {
		i.name = name
	}
	if description != "" {
		i.description = description
	}
	if available != nil {
		i.available = *available
	}
	i.updatedAt = time.Now().UTC()
}
