package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
//
// The filter queries come in two directions: scoped to the booker, or scoped
// to the owner of the booked item. All list queries return bookings ordered
// ascending by start. CURRENT uses strict comparisons on both ends
// (start < now AND end > now), PAST is end < now, FUTURE is start > now.
type BookingRepository interface {
	// FindByID retrieves a booking by id, failing with a not-found error if
	// absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists the current state of an existing booking.
	Update(ctx context.Context, b *Booking) error

	// --- Booker-scoped filter queries ---

	FindAllByBooker(ctx context.Context, bookerID uuid.UUID) ([]*Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status Status) ([]*Booking, error)

	// --- Owner-scoped filter queries (owner of the booked item) ---

	FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Booking, error)
	FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*Booking, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status Status) ([]*Booking, error)

	// ExistsApprovedPastBooking reports whether the user has an APPROVED
	// booking of the item that ended strictly before the reference instant.
	ExistsApprovedPastBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// LastAndNextBookingDates returns the end of the most recent past booking
	// and the start of the nearest future booking of an item, either of which
	// may be nil.
	LastAndNextBookingDates(ctx context.Context, itemID uuid.UUID, now time.Time) (last, next *time.Time, err error)
}
