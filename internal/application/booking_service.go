package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowspace/service-sharing/internal/domain"
	bookingDomain "github.com/borrowspace/service-sharing/internal/domain/booking"
	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID     `json:"itemId" binding:"required"`
	Start  LocalDateTime `json:"start" binding:"required"`
	End    LocalDateTime `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID     `json:"id"`
	Start  LocalDateTime `json:"start"`
	End    LocalDateTime `json:"end"`
	Status string        `json:"status"`
	Item   ItemDTO       `json:"item"`
	Booker UserDTO       `json:"booker"`
}

// BookingEventPublisher notifies downstream consumers of booking lifecycle
// changes. Implementations must not fail the triggering request.
type BookingEventPublisher interface {
	BookingRequested(ctx context.Context, b *bookingDomain.Booking)
	BookingDecided(ctx context.Context, b *bookingDomain.Booking)
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation, approval, and the filtered views over a user's
// bookings. The reference instant for time-based filters is always supplied
// by the caller so results stay deterministic.
type BookingService struct {
	users  userDomain.UserRepository
	items  itemDomain.ItemRepository
	repo   bookingDomain.BookingRepository
	events BookingEventPublisher
	logger *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	repo bookingDomain.BookingRepository,
	events BookingEventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		users:  users,
		items:  items,
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// CreateBooking creates a WAITING booking of an item for the requesting user.
// The booker and item must exist, start must be strictly before end, and the
// item must currently be available. Existing bookings over the same window
// are not considered.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest, bookerID uuid.UUID) (*BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	itm, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	b, err := bookingDomain.NewBooking(*itm, *booker, req.Start.Time, req.End.Time)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		s.logger.Error("failed to save booking", zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("item_id", itm.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	s.events.BookingRequested(ctx, b)

	result := toBookingDTO(b)
	return &result, nil
}

// ApproveBooking lets the item owner approve or reject a booking. Any caller
// other than the owner of the booked item is rejected, including the booker.
// A repeated decision overwrites the previous status.
func (s *BookingService) ApproveBooking(ctx context.Context, bookingID uuid.UUID, approved bool, callerID uuid.UUID) (*BookingDTO, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(callerID) {
		return nil, domain.NewForbiddenError(
			"user %s is not allowed to decide on booking %s", callerID, bookingID)
	}

	b.Decide(approved)
	if err := s.repo.Update(ctx, b); err != nil {
		s.logger.Error("failed to update booking", zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking decided",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", b.Status().String()),
	)
	s.events.BookingDecided(ctx, b)

	result := toBookingDTO(b)
	return &result, nil
}

// GetBookingByIDAndUser retrieves a booking for the item owner or the booker.
// Any other caller is rejected.
func (s *BookingService) GetBookingByIDAndUser(ctx context.Context, bookingID, callerID uuid.UUID) (*BookingDTO, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(caller.ID()) && !b.IsBookedBy(caller.ID()) {
		return nil, domain.NewForbiddenError(
			"user %s is not allowed to view booking %s", callerID, bookingID)
	}

	result := toBookingDTO(b)
	return &result, nil
}

// GetCurrentUserBookings returns the user's own bookings selected by the
// filter, ascending by start. now is the caller-supplied reference instant
// for the CURRENT/PAST/FUTURE views.
func (s *BookingService) GetCurrentUserBookings(ctx context.Context, filter bookingDomain.Filter, userID uuid.UUID, now time.Time) ([]BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var bookings []*bookingDomain.Booking
	switch filter {
	case bookingDomain.FilterAll:
		bookings, err = s.repo.FindAllByBooker(ctx, booker.ID())
	case bookingDomain.FilterCurrent:
		bookings, err = s.repo.FindCurrentByBooker(ctx, booker.ID(), now)
	case bookingDomain.FilterPast:
		bookings, err = s.repo.FindPastByBooker(ctx, booker.ID(), now)
	case bookingDomain.FilterFuture:
		bookings, err = s.repo.FindFutureByBooker(ctx, booker.ID(), now)
	case bookingDomain.FilterWaiting:
		bookings, err = s.repo.FindByBookerAndStatus(ctx, booker.ID(), bookingDomain.StatusWaiting)
	case bookingDomain.FilterRejected:
		bookings, err = s.repo.FindByBookerAndStatus(ctx, booker.ID(), bookingDomain.StatusRejected)
	default:
		return nil, domain.NewBadRequestError("unknown booking state: %s", filter)
	}
	if err != nil {
		return nil, err
	}

	return toBookingDTOs(bookings), nil
}

// GetOwnerBookings returns bookings of the user's items selected by the
// filter, ascending by start.
func (s *BookingService) GetOwnerBookings(ctx context.Context, filter bookingDomain.Filter, userID uuid.UUID, now time.Time) ([]BookingDTO, error) {
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var bookings []*bookingDomain.Booking
	switch filter {
	case bookingDomain.FilterAll:
		bookings, err = s.repo.FindAllByOwner(ctx, owner.ID())
	case bookingDomain.FilterCurrent:
		bookings, err = s.repo.FindCurrentByOwner(ctx, owner.ID(), now)
	case bookingDomain.FilterPast:
		bookings, err = s.repo.FindPastByOwner(ctx, owner.ID(), now)
	case bookingDomain.FilterFuture:
		bookings, err = s.repo.FindFutureByOwner(ctx, owner.ID(), now)
	case bookingDomain.FilterWaiting:
		bookings, err = s.repo.FindByOwnerAndStatus(ctx, owner.ID(), bookingDomain.StatusWaiting)
	case bookingDomain.FilterRejected:
		bookings, err = s.repo.FindByOwnerAndStatus(ctx, owner.ID(), bookingDomain.StatusRejected)
	default:
		return nil, domain.NewBadRequestError("unknown booking state: %s", filter)
	}
	if err != nil {
		return nil, err
	}

	return toBookingDTOs(bookings), nil
}

// ExistsPastApprovedItemBooking reports whether the user has an APPROVED
// booking of the item that ended before the reference instant. This gates
// comment creation.
func (s *BookingService) ExistsPastApprovedItemBooking(ctx context.Context, itm itemDomain.Item, u userDomain.User, now time.Time) (bool, error) {
	return s.repo.ExistsApprovedPastBooking(ctx, itm.ID(), u.ID(), now)
}

// LastAndNextBookingDates returns the end of the item's most recent past
// booking and the start of its nearest future booking.
func (s *BookingService) LastAndNextBookingDates(ctx context.Context, itemID uuid.UUID, now time.Time) (last, next *time.Time, err error) {
	return s.repo.LastAndNextBookingDates(ctx, itemID, now)
}

// --- Helpers ---

func toBookingDTO(b *bookingDomain.Booking) BookingDTO {
	itm := b.Item()
	booker := b.Booker()
	return BookingDTO{
		ID:     b.ID(),
		Start:  NewLocalDateTime(b.Start()),
		End:    NewLocalDateTime(b.End()),
		Status: b.Status().String(),
		Item:   toItemDTO(&itm),
		Booker: toUserDTO(&booker),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos
}
