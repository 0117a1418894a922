package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowspace/service-sharing/internal/domain"
	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest is the request DTO for partially updating an item.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the API response representation of an item.
type ItemDTO struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}

// CommentDTO is the API response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID     `json:"id"`
	ItemID     uuid.UUID     `json:"itemId"`
	AuthorName string        `json:"authorName"`
	Text       string        `json:"text"`
	Created    LocalDateTime `json:"created"`
}

// ItemDetailsDTO is an item with its comments and, for the owner, the
// surrounding booking dates.
type ItemDetailsDTO struct {
	ItemDTO
	Comments    []CommentDTO   `json:"comments"`
	LastBooking *LocalDateTime `json:"lastBooking,omitempty"`
	NextBooking *LocalDateTime `json:"nextBooking,omitempty"`
}

// ItemService implements use cases for the item catalog, including the
// comment feature gated on a completed approved booking.
type ItemService struct {
	users    userDomain.UserRepository
	repo     itemDomain.ItemRepository
	comments itemDomain.CommentRepository
	bookings *BookingService
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	users userDomain.UserRepository,
	repo itemDomain.ItemRepository,
	comments itemDomain.CommentRepository,
	bookings *BookingService,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		users:    users,
		repo:     repo,
		comments: comments,
		bookings: bookings,
		logger:   logger,
	}
}

// CreateItem lists a new item owned by the given user.
func (s *ItemService) CreateItem(ctx context.Context, req CreateItemRequest, ownerID uuid.UUID) (*ItemDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	available := false
	if req.Available != nil {
		available = *req.Available
	}

	itm, err := itemDomain.NewItem(owner.ID(), req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, itm); err != nil {
		s.logger.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	s.logger.Info("item created",
		zap.String("item_id", itm.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(itm)
	return &result, nil
}

// UpdateItem applies a partial update, verifying ownership.
func (s *ItemService) UpdateItem(ctx context.Context, req UpdateItemRequest, itemID, callerID uuid.UUID) (*ItemDTO, error) {
	itm, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !itm.IsOwnedBy(caller.ID()) {
		return nil, domain.NewForbiddenError("user %s is not allowed to change item %s", callerID, itemID)
	}

	itm.Update(req.Name, req.Description, req.Available)
	if err := s.repo.Update(ctx, itm); err != nil {
		s.logger.Error("failed to update item", zap.Error(err))
		return nil, err
	}

	result := toItemDTO(itm)
	return &result, nil
}

// GetItem returns an item with its comments. The owner additionally sees the
// dates of the surrounding bookings. now is the reference instant for those
// dates.
func (s *ItemService) GetItem(ctx context.Context, itemID, callerID uuid.UUID, now time.Time) (*ItemDetailsDTO, error) {
	itm, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &ItemDetailsDTO{
		ItemDTO:  toItemDTO(itm),
		Comments: toCommentDTOs(comments),
	}

	if itm.IsOwnedBy(callerID) {
		if err := s.attachBookingDates(ctx, details, now); err != nil {
			return nil, err
		}
	}

	return details, nil
}

// GetUserItems returns the caller's items with comments and surrounding
// booking dates.
func (s *ItemService) GetUserItems(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]ItemDetailsDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwnerID(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDetailsDTO, len(items))
	for i, itm := range items {
		comments, err := s.comments.FindByItemID(ctx, itm.ID())
		if err != nil {
			return nil, err
		}
		dtos[i] = ItemDetailsDTO{
			ItemDTO:  toItemDTO(itm),
			Comments: toCommentDTOs(comments),
		}
		if err := s.attachBookingDates(ctx, &dtos[i], now); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// Search finds available items matching the text. A blank query returns an
// empty list without touching the store.
func (s *ItemService) Search(ctx context.Context, text string) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, itm := range items {
		dtos[i] = toItemDTO(itm)
	}
	return dtos, nil
}

// DeleteItem removes an item, verifying ownership.
func (s *ItemService) DeleteItem(ctx context.Context, itemID, callerID uuid.UUID) error {
	itm, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return err
	}

	if !itm.IsOwnedBy(caller.ID()) {
		return domain.NewForbiddenError("user %s is not allowed to delete item %s", callerID, itemID)
	}

	return s.repo.Delete(ctx, itemID)
}

// CreateComment adds a comment to an item. Only a user with an APPROVED
// booking of the item that ended before now may comment.
func (s *ItemService) CreateComment(ctx context.Context, req CreateCommentRequest, itemID, authorID uuid.UUID, now time.Time) (*CommentDTO, error) {
	itm, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.bookings.ExistsPastApprovedItemBooking(ctx, *itm, *author, now)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.NewBadRequestError(
			"user %s has no completed approved booking of item %s", authorID, itemID)
	}

	comment, err := itemDomain.NewComment(itm.ID(), *author, req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		s.logger.Error("failed to save comment", zap.Error(err))
		return nil, err
	}

	s.logger.Info("comment created",
		zap.String("comment_id", comment.ID().String()),
		zap.String("item_id", itemID.String()),
	)
	result := toCommentDTO(comment)
	return &result, nil
}

// --- Helpers ---

func (s *ItemService) attachBookingDates(ctx context.Context, details *ItemDetailsDTO, now time.Time) error {
	last, next, err := s.bookings.LastAndNextBookingDates(ctx, details.ID, now)
	if err != nil {
		return err
	}
	if last != nil {
		t := NewLocalDateTime(*last)
		details.LastBooking = &t
	}
	if next != nil {
		t := NewLocalDateTime(*next)
		details.NextBooking = &t
	}
	return nil
}

func toItemDTO(i *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          i.ID(),
		OwnerID:     i.OwnerID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorName: c.Author().Name(),
		Text:       c.Text(),
		Created:    NewLocalDateTime(c.CreatedAt()),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
