package item

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for the item catalog.
type ItemRepository interface {
	// FindByID retrieves an item by id, failing with a not-found error if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items owned by the given user.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Item, error)

	// FindByRequestID retrieves all items offered in response to a request.
	FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*Item, error)

	// Search finds available items whose name or description contains the
	// substring, case-insensitively.
	Search(ctx context.Context, substring string) ([]*Item, error)

	// Save persists a new item.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error

	// Delete removes an item by id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error

	// FindByItemID retrieves comments on an item, oldest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)
}
