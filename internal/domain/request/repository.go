package request

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines persistence operations for item requests.
type RequestRepository interface {
	// FindByID retrieves a request by id, failing with a not-found error if
	// absent.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequesterID retrieves a user's own requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// FindAllExcludingRequester retrieves other users' requests, newest first.
	FindAllExcludingRequester(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// Save persists a new request.
	Save(ctx context.Context, r *ItemRequest) error
}
