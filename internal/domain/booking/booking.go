package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
	"github.com/borrowspace/service-sharing/internal/domain/item"
	"github.com/borrowspace/service-sharing/internal/domain/user"
)

// Booking is the aggregate root for a booking of an item over a date range.
// The item and booker are snapshots of entities owned by the catalog and the
// directory; the booking never mutates them.
type Booking struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	item      item.Item
	booker    user.User
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new WAITING booking after checking the temporal and
// availability rules. The booker and item must already be resolved.
//
// Overlap with existing bookings of the same item is deliberately not
// checked; only the availability flag gates creation.
func NewBooking(itm item.Item, booker user.User, start, end time.Time) (*Booking, error) {
	if start.After(end) {
		return nil, domain.NewBadRequestError("booking start must not be after its end")
	}
	if start.Equal(end) {
		return nil, domain.NewBadRequestError("booking start must not equal its end")
	}
	if !itm.Available() {
		return nil, domain.NewBadRequestError("item with id %s is not available for booking", itm.ID())
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start,
		end:       end,
		item:      itm,
		booker:    booker,
		status:    StatusWaiting,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	itm item.Item,
	booker user.User,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      itm,
		booker:    booker,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) Start() time.Time     { return b.start }
func (b *Booking) End() time.Time       { return b.end }
func (b *Booking) Item() item.Item      { return b.item }
func (b *Booking) Booker() user.User    { return b.booker }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the booked item belongs to the given user.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.item.OwnerID() == userID
}

// IsBookedBy checks if the booking was requested by the given user.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.booker.ID() == userID
}

// Decide sets the status to APPROVED or REJECTED. A repeated decision
// overwrites the previous one; no transition guard is applied.
func (b *Booking) Decide(approved bool) {
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	b.updatedAt = time.Now().UTC()
}
