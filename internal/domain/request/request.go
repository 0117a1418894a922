package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
	"github.com/borrowspace/service-sharing/internal/domain/user"
)

// ItemRequest is a wish for an item nobody has listed yet. Other users may
// answer it by creating items that reference the request.
type ItemRequest struct {
	id          uuid.UUID
	requester   user.User
	description string
	createdAt   time.Time
}

// NewItemRequest creates a new item request by the given user.
func NewItemRequest(requester user.User, description string) (*ItemRequest, error) {
	if description == "" {
		return nil, domain.NewBadRequestError("request description is required")
	}

	return &ItemRequest{
		id:          uuid.New(),
		requester:   requester,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data (no validation).
func Reconstruct(id uuid.UUID, requester user.User, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requester:   requester,
		description: description,
		createdAt:   createdAt,
	}
}

// --- Getters ---

func (r ItemRequest) ID() uuid.UUID        { return r.id }
func (r ItemRequest) Requester() user.User { return r.requester }
func (r ItemRequest) Description() string  { return r.description }
func (r ItemRequest) CreatedAt() time.Time { return r.createdAt }
