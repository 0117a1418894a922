package application_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/borrowspace/service-sharing/internal/domain"
	bookingDomain "github.com/borrowspace/service-sharing/internal/domain/booking"
	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

// In-memory repository fakes. They mirror the query semantics of the GORM
// implementations closely enough for service-level tests: list queries are
// ordered ascending by start, CURRENT uses strict comparisons on both ends.

type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id.String())
	}
	return i, nil
}

func (r *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.OwnerID() == ownerID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindByRequestID(_ context.Context, requestID uuid.UUID) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, i := range r.items {
		if i.RequestID() != nil && *i.RequestID() == requestID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, substring string) ([]*itemDomain.Item, error) {
	needle := strings.ToLower(substring)
	var out []*itemDomain.Item
	for _, i := range r.items {
		if !i.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name()), needle) ||
			strings.Contains(strings.ToLower(i.Description()), needle) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, i *itemDomain.Item) error {
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *itemDomain.Item) error {
	if _, ok := r.items[i.ID()]; !ok {
		return domain.NewNotFoundError("item", i.ID().String())
	}
	r.items[i.ID()] = i
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type fakeCommentRepo struct {
	comments []*itemDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return b, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *bookingDomain.Booking) error {
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *bookingDomain.Booking) error {
	if _, ok := r.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) list(match func(*bookingDomain.Booking) bool) []*bookingDomain.Booking {
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().Before(out[j].Start()) })
	return out
}

func (r *fakeBookingRepo) FindAllByBooker(_ context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.IsBookedBy(bookerID) }), nil
}

func (r *fakeBookingRepo) FindCurrentByBooker(_ context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsBookedBy(bookerID) && b.Start().Before(now) && b.End().After(now)
	}), nil
}

func (r *fakeBookingRepo) FindPastByBooker(_ context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsBookedBy(bookerID) && b.End().Before(now)
	}), nil
}

func (r *fakeBookingRepo) FindFutureByBooker(_ context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsBookedBy(bookerID) && b.Start().After(now)
	}), nil
}

func (r *fakeBookingRepo) FindByBookerAndStatus(_ context.Context, bookerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsBookedBy(bookerID) && b.Status() == status
	}), nil
}

func (r *fakeBookingRepo) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.IsOwnedBy(ownerID) }), nil
}

func (r *fakeBookingRepo) FindCurrentByOwner(_ context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsOwnedBy(ownerID) && b.Start().Before(now) && b.End().After(now)
	}), nil
}

func (r *fakeBookingRepo) FindPastByOwner(_ context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsOwnedBy(ownerID) && b.End().Before(now)
	}), nil
}

func (r *fakeBookingRepo) FindFutureByOwner(_ context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsOwnedBy(ownerID) && b.Start().After(now)
	}), nil
}

func (r *fakeBookingRepo) FindByOwnerAndStatus(_ context.Context, ownerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool {
		return b.IsOwnedBy(ownerID) && b.Status() == status
	}), nil
}

func (r *fakeBookingRepo) ExistsApprovedPastBooking(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.Item().ID() == itemID && b.IsBookedBy(bookerID) &&
			b.Status() == bookingDomain.StatusApproved && b.End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) LastAndNextBookingDates(_ context.Context, itemID uuid.UUID, now time.Time) (last, next *time.Time, err error) {
	for _, b := range r.bookings {
		if b.Item().ID() != itemID {
			continue
		}
		if b.End().Before(now) {
			end := b.End()
			if last == nil || end.After(*last) {
				last = &end
			}
		}
		if b.Start().After(now) {
			start := b.Start()
			if next == nil || start.Before(*next) {
				next = &start
			}
		}
	}
	return last, next, nil
}

// recordingPublisher captures published booking events for assertions.
type recordingPublisher struct {
	requested []uuid.UUID
	decided   []uuid.UUID
}

func (p *recordingPublisher) BookingRequested(_ context.Context, b *bookingDomain.Booking) {
	p.requested = append(p.requested, b.ID())
}

func (p *recordingPublisher) BookingDecided(_ context.Context, b *bookingDomain.Booking) {
	p.decided = append(p.decided, b.ID())
}
