package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borrowspace/service-sharing/internal/application"
	"github.com/borrowspace/service-sharing/internal/domain"
	bookingDomain "github.com/borrowspace/service-sharing/internal/domain/booking"
	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

type bookingFixture struct {
	users    *fakeUserRepo
	items    *fakeItemRepo
	bookings *fakeBookingRepo
	events   *recordingPublisher
	service  *application.BookingService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		users:    newFakeUserRepo(),
		items:    newFakeItemRepo(),
		bookings: newFakeBookingRepo(),
		events:   &recordingPublisher{},
	}
	f.service = application.NewBookingService(f.users, f.items, f.bookings, f.events, zap.NewNop())
	return f
}

func (f *bookingFixture) seedUser(t *testing.T, name string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser(name, name+"@example.com")
	require.NoError(t, err)
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

func (f *bookingFixture) seedItem(t *testing.T, ownerID uuid.UUID, available bool) *itemDomain.Item {
	t.Helper()
	i, err := itemDomain.NewItem(ownerID, "ladder", "a sturdy ladder", available, nil)
	require.NoError(t, err)
	require.NoError(t, f.items.Save(context.Background(), i))
	return i
}

func (f *bookingFixture) seedBooking(t *testing.T, itm *itemDomain.Item, booker *userDomain.User, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	t.Helper()
	now := time.Now().UTC()
	b := bookingDomain.Reconstruct(uuid.New(), start, end, *itm, *booker, status, now, now)
	require.NoError(t, f.bookings.Save(context.Background(), b))
	return b
}

func requireKind(t *testing.T, err error, want domain.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok, "expected a classified error, got %v", err)
	assert.Equal(t, want, kind)
}

func bookingWindow(offset time.Duration) (start, end application.LocalDateTime) {
	s := time.Now().Add(offset).Truncate(time.Second)
	return application.NewLocalDateTime(s), application.NewLocalDateTime(s.Add(24 * time.Hour))
}

func TestCreateBooking_Succeeds(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)

	start, end := bookingWindow(24 * time.Hour)
	dto, err := f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: itm.ID(),
		Start:  start,
		End:    end,
	}, booker.ID())
	require.NoError(t, err)

	assert.Equal(t, "WAITING", dto.Status)
	assert.Equal(t, itm.ID(), dto.Item.ID)
	assert.Equal(t, booker.ID(), dto.Booker.ID)
	require.Len(t, f.events.requested, 1)
	assert.Equal(t, dto.ID, f.events.requested[0])
}

func TestCreateBooking_UnknownBooker(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	itm := f.seedItem(t, owner.ID(), true)

	start, end := bookingWindow(24 * time.Hour)
	_, err := f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: itm.ID(),
		Start:  start,
		End:    end,
	}, uuid.New())
	requireKind(t, err, domain.KindNotFound)
	assert.Empty(t, f.events.requested)
}

func TestCreateBooking_UnknownItem(t *testing.T) {
	f := newBookingFixture(t)
	booker := f.seedUser(t, "booker")

	start, end := bookingWindow(24 * time.Hour)
	_, err := f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: uuid.New(),
		Start:  start,
		End:    end,
	}, booker.ID())
	requireKind(t, err, domain.KindNotFound)
}

func TestCreateBooking_InvalidWindow(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)

	start := application.NewLocalDateTime(time.Now().Add(48 * time.Hour))
	end := application.NewLocalDateTime(time.Now().Add(24 * time.Hour))
	_, err := f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: itm.ID(),
		Start:  start,
		End:    end,
	}, booker.ID())
	requireKind(t, err, domain.KindBadRequest)

	at := application.NewLocalDateTime(time.Now().Add(24 * time.Hour))
	_, err = f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: itm.ID(),
		Start:  at,
		End:    at,
	}, booker.ID())
	requireKind(t, err, domain.KindBadRequest)
}

func TestCreateBooking_UnavailableItem(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), false)

	start, end := bookingWindow(24 * time.Hour)
	_, err := f.service.CreateBooking(context.Background(), application.CreateBookingRequest{
		ItemID: itm.ID(),
		Start:  start,
		End:    end,
	}, booker.ID())
	requireKind(t, err, domain.KindBadRequest)
}

func TestCreateBooking_OverlapIsAllowed(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	first := f.seedUser(t, "first")
	second := f.seedUser(t, "second")
	itm := f.seedItem(t, owner.ID(), true)

	start, end := bookingWindow(24 * time.Hour)
	req := application.CreateBookingRequest{ItemID: itm.ID(), Start: start, End: end}

	_, err := f.service.CreateBooking(context.Background(), req, first.ID())
	require.NoError(t, err)

	// The same window books again without conflict.
	_, err = f.service.CreateBooking(context.Background(), req, second.ID())
	require.NoError(t, err)
}

func TestApproveBooking_ByOwner(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Now()
	b := f.seedBooking(t, itm, booker, now.Add(24*time.Hour), now.Add(48*time.Hour), bookingDomain.StatusWaiting)

	dto, err := f.service.ApproveBooking(context.Background(), b.ID(), true, owner.ID())
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", dto.Status)
	require.Len(t, f.events.decided, 1)

	// A repeated decision overwrites the previous one.
	dto, err = f.service.ApproveBooking(context.Background(), b.ID(), false, owner.ID())
	require.NoError(t, err)
	assert.Equal(t, "REJECTED", dto.Status)
}

func TestApproveBooking_NotOwner(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	stranger := f.seedUser(t, "stranger")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Now()
	b := f.seedBooking(t, itm, booker, now.Add(24*time.Hour), now.Add(48*time.Hour), bookingDomain.StatusWaiting)

	// The booker may not decide on their own booking.
	_, err := f.service.ApproveBooking(context.Background(), b.ID(), true, booker.ID())
	requireKind(t, err, domain.KindForbidden)

	_, err = f.service.ApproveBooking(context.Background(), b.ID(), true, stranger.ID())
	requireKind(t, err, domain.KindForbidden)

	assert.Empty(t, f.events.decided)
}

func TestApproveBooking_UnknownBooking(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")

	_, err := f.service.ApproveBooking(context.Background(), uuid.New(), true, owner.ID())
	requireKind(t, err, domain.KindNotFound)
}

func TestGetBooking_OwnerAndBookerOnly(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	stranger := f.seedUser(t, "stranger")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Now()
	b := f.seedBooking(t, itm, booker, now.Add(24*time.Hour), now.Add(48*time.Hour), bookingDomain.StatusWaiting)

	_, err := f.service.GetBookingByIDAndUser(context.Background(), b.ID(), owner.ID())
	require.NoError(t, err)

	_, err = f.service.GetBookingByIDAndUser(context.Background(), b.ID(), booker.ID())
	require.NoError(t, err)

	_, err = f.service.GetBookingByIDAndUser(context.Background(), b.ID(), stranger.ID())
	requireKind(t, err, domain.KindForbidden)

	_, err = f.service.GetBookingByIDAndUser(context.Background(), b.ID(), uuid.New())
	requireKind(t, err, domain.KindNotFound)
}

// seedTimeline creates one booking in each temporal bucket relative to now,
// plus a rejected future one. Returns now.
func seedTimeline(t *testing.T, f *bookingFixture, itm *itemDomain.Item, booker *userDomain.User) time.Time {
	t.Helper()
	now := time.Now().UTC()
	f.seedBooking(t, itm, booker, now.Add(-72*time.Hour), now.Add(-48*time.Hour), bookingDomain.StatusApproved)
	f.seedBooking(t, itm, booker, now.Add(-24*time.Hour), now.Add(24*time.Hour), bookingDomain.StatusApproved)
	f.seedBooking(t, itm, booker, now.Add(48*time.Hour), now.Add(72*time.Hour), bookingDomain.StatusWaiting)
	f.seedBooking(t, itm, booker, now.Add(96*time.Hour), now.Add(120*time.Hour), bookingDomain.StatusRejected)
	return now
}

func TestGetCurrentUserBookings_Filters(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := seedTimeline(t, f, itm, booker)

	ctx := context.Background()

	all, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterAll, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Ascending by start.
	for i := 1; i < len(all); i++ {
		assert.True(t, !all[i].Start.Time.Before(all[i-1].Start.Time))
	}

	current, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterCurrent, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, current, 1)

	past, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterPast, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, past, 1)

	future, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterFuture, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, future, 2)

	waiting, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterWaiting, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, waiting, 1)

	rejected, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterRejected, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
}

func TestGetOwnerBookings_Filters(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := seedTimeline(t, f, itm, booker)

	ctx := context.Background()

	all, err := f.service.GetOwnerBookings(ctx, bookingDomain.FilterAll, owner.ID(), now)
	require.NoError(t, err)
	require.Len(t, all, 4)

	current, err := f.service.GetOwnerBookings(ctx, bookingDomain.FilterCurrent, owner.ID(), now)
	require.NoError(t, err)
	require.Len(t, current, 1)

	// The owner has no bookings as a booker.
	asBooker, err := f.service.GetCurrentUserBookings(ctx, bookingDomain.FilterAll, owner.ID(), now)
	require.NoError(t, err)
	assert.Empty(t, asBooker)
}

func TestGetBookings_BoundaryInstantsExcludedFromTemporalViews(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// One booking starting exactly at the reference instant, one ending
	// exactly at it. The temporal views compare strictly on both ends, so
	// neither may surface under CURRENT, PAST or FUTURE.
	f.seedBooking(t, itm, booker, now, now.Add(24*time.Hour), bookingDomain.StatusWaiting)
	f.seedBooking(t, itm, booker, now.Add(-24*time.Hour), now, bookingDomain.StatusWaiting)

	ctx := context.Background()

	for _, scope := range []struct {
		name string
		list func(bookingDomain.Filter) ([]application.BookingDTO, error)
	}{
		{"booker", func(fl bookingDomain.Filter) ([]application.BookingDTO, error) {
			return f.service.GetCurrentUserBookings(ctx, fl, booker.ID(), now)
		}},
		{"owner", func(fl bookingDomain.Filter) ([]application.BookingDTO, error) {
			return f.service.GetOwnerBookings(ctx, fl, owner.ID(), now)
		}},
	} {
		t.Run(scope.name, func(t *testing.T) {
			all, err := scope.list(bookingDomain.FilterAll)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			waiting, err := scope.list(bookingDomain.FilterWaiting)
			require.NoError(t, err)
			assert.Len(t, waiting, 2)

			for _, fl := range []bookingDomain.Filter{
				bookingDomain.FilterCurrent,
				bookingDomain.FilterPast,
				bookingDomain.FilterFuture,
			} {
				got, err := scope.list(fl)
				require.NoError(t, err)
				assert.Empty(t, got, "filter %s must exclude boundary bookings", fl)
			}
		})
	}
}

func TestGetCurrentUserBookings_ReferenceInstantInWireFrame(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)

	// Stored window 11:00-13:00 in the naive frame. A server whose wall
	// clock reads 12:00 in a zone east of UTC must still classify it as
	// CURRENT once the reading is placed in the same frame.
	f.seedBooking(t, itm, booker,
		time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
		bookingDomain.StatusApproved)

	eastOfUTC := time.FixedZone("UTC+2", 2*60*60)
	wall := time.Date(2026, 3, 1, 12, 0, 0, 0, eastOfUTC)
	now := application.FromWallClock(wall).Time

	current, err := f.service.GetCurrentUserBookings(context.Background(), bookingDomain.FilterCurrent, booker.ID(), now)
	require.NoError(t, err)
	require.Len(t, current, 1)

	// Taken as an absolute instant instead, the same reading sits before
	// the window and would misfile the booking as FUTURE.
	future, err := f.service.GetCurrentUserBookings(context.Background(), bookingDomain.FilterFuture, booker.ID(), wall)
	require.NoError(t, err)
	require.Len(t, future, 1)
}

func TestGetBookings_UnknownUser(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetCurrentUserBookings(context.Background(), bookingDomain.FilterAll, uuid.New(), time.Now())
	requireKind(t, err, domain.KindNotFound)

	_, err = f.service.GetOwnerBookings(context.Background(), bookingDomain.FilterAll, uuid.New(), time.Now())
	requireKind(t, err, domain.KindNotFound)
}

func TestGetBookings_UnknownFilter(t *testing.T) {
	f := newBookingFixture(t)
	booker := f.seedUser(t, "booker")

	_, err := f.service.GetCurrentUserBookings(context.Background(), bookingDomain.Filter("SOMEDAY"), booker.ID(), time.Now())
	requireKind(t, err, domain.KindBadRequest)
}

func TestExistsPastApprovedItemBooking(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Now().UTC()

	ctx := context.Background()

	// WAITING past booking does not qualify.
	f.seedBooking(t, itm, booker, now.Add(-72*time.Hour), now.Add(-48*time.Hour), bookingDomain.StatusWaiting)
	ok, err := f.service.ExistsPastApprovedItemBooking(ctx, *itm, *booker, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// APPROVED but still running does not qualify.
	f.seedBooking(t, itm, booker, now.Add(-24*time.Hour), now.Add(24*time.Hour), bookingDomain.StatusApproved)
	ok, err = f.service.ExistsPastApprovedItemBooking(ctx, *itm, *booker, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// APPROVED and ended qualifies.
	f.seedBooking(t, itm, booker, now.Add(-48*time.Hour), now.Add(-24*time.Hour), bookingDomain.StatusApproved)
	ok, err = f.service.ExistsPastApprovedItemBooking(ctx, *itm, *booker, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLastAndNextBookingDates(t *testing.T) {
	f := newBookingFixture(t)
	owner := f.seedUser(t, "owner")
	booker := f.seedUser(t, "booker")
	itm := f.seedItem(t, owner.ID(), true)
	now := time.Now().UTC()

	pastEnd := now.Add(-24 * time.Hour)
	nextStart := now.Add(48 * time.Hour)
	f.seedBooking(t, itm, booker, now.Add(-72*time.Hour), now.Add(-60*time.Hour), bookingDomain.StatusApproved)
	f.seedBooking(t, itm, booker, now.Add(-48*time.Hour), pastEnd, bookingDomain.StatusApproved)
	f.seedBooking(t, itm, booker, nextStart, now.Add(72*time.Hour), bookingDomain.StatusWaiting)
	f.seedBooking(t, itm, booker, now.Add(96*time.Hour), now.Add(120*time.Hour), bookingDomain.StatusWaiting)

	last, next, err := f.service.LastAndNextBookingDates(context.Background(), itm.ID(), now)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.NotNil(t, next)
	assert.True(t, last.Equal(pastEnd))
	assert.True(t, next.Equal(nextStart))
}
