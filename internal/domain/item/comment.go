package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
	"github.com/borrowspace/service-sharing/internal/domain/user"
)

// Comment is feedback left on an item by a user with a completed approved
// booking of it. The author is carried as a snapshot for display.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	author    user.User
	text      string
	createdAt time.Time
}

// NewComment creates a new comment on the given item.
func NewComment(itemID uuid.UUID, author user.User, text string) (*Comment, error) {
	if text == "" {
		return nil, domain.NewBadRequestError("comment text is required")
	}

	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		author:    author,
		text:      text,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data (no validation).
func ReconstructComment(id, itemID uuid.UUID, author user.User, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		author:    author,
		text:      text,
		createdAt: createdAt,
	}
}

// --- Getters ---

func (c Comment) ID() uuid.UUID        { return c.id }
func (c Comment) ItemID() uuid.UUID    { return c.itemID }
func (c Comment) Author() user.User    { return c.author }
func (c Comment) Text() string         { return c.text }
func (c Comment) CreatedAt() time.Time { return c.createdAt }
