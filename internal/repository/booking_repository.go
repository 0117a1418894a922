package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/borrowspace/service-sharing/internal/domain"
	bookingDomain "github.com/borrowspace/service-sharing/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table. Start and end are
// stored as naive timestamps (no timezone) to match the wire format.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null;index"`
	ItemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Item      ItemModel `gorm:"foreignKey:ItemID"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Booker    UserModel `gorm:"foreignKey:BookerID"`
	Status    string    `gorm:"not null;size:20;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.withAssociations(ctx).Where("bookings.id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists the current state of an existing booking. Concurrent
// decisions on the same booking are not synchronized; the last write wins.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("booking", model.ID.String())
	}
	return nil
}

// --- Booker-scoped filter queries ---

// FindAllByBooker retrieves all bookings made by the user, ascending by start.
func (r *GormBookingRepository) FindAllByBooker(ctx context.Context, bookerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byBooker(ctx, bookerID))
}

// FindCurrentByBooker retrieves the user's bookings in progress at the
// reference instant.
func (r *GormBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byBooker(ctx, bookerID).
		Where("start_date < ? AND end_date > ?", now, now))
}

// FindPastByBooker retrieves the user's bookings that ended before the
// reference instant.
func (r *GormBookingRepository) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byBooker(ctx, bookerID).
		Where("end_date < ?", now))
}

// FindFutureByBooker retrieves the user's bookings starting after the
// reference instant.
func (r *GormBookingRepository) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byBooker(ctx, bookerID).
		Where("start_date > ?", now))
}

// FindByBookerAndStatus retrieves the user's bookings with the given status.
func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byBooker(ctx, bookerID).
		Where("status = ?", string(status)))
}

// --- Owner-scoped filter queries ---

// FindAllByOwner retrieves all bookings of items owned by the user.
func (r *GormBookingRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byOwner(ctx, ownerID))
}

// FindCurrentByOwner retrieves bookings of the user's items in progress at
// the reference instant.
func (r *GormBookingRepository) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byOwner(ctx, ownerID).
		Where("bookings.start_date < ? AND bookings.end_date > ?", now, now))
}

// FindPastByOwner retrieves bookings of the user's items that ended before
// the reference instant.
func (r *GormBookingRepository) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byOwner(ctx, ownerID).
		Where("bookings.end_date < ?", now))
}

// FindFutureByOwner retrieves bookings of the user's items starting after
// the reference instant.
func (r *GormBookingRepository) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byOwner(ctx, ownerID).
		Where("bookings.start_date > ?", now))
}

// FindByOwnerAndStatus retrieves bookings of the user's items with the given
// status.
func (r *GormBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.Status) ([]*bookingDomain.Booking, error) {
	return r.findBookings(ctx, r.byOwner(ctx, ownerID).
		Where("bookings.status = ?", string(status)))
}

// ExistsApprovedPastBooking reports whether the user has an approved booking
// of the item that ended strictly before the reference instant.
func (r *GormBookingRepository) ExistsApprovedPastBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, string(bookingDomain.StatusApproved), now).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check past approved booking: %w", err)
	}
	return count > 0, nil
}

// LastAndNextBookingDates returns the end of the most recent past booking and
// the start of the nearest future booking of an item.
func (r *GormBookingRepository) LastAndNextBookingDates(ctx context.Context, itemID uuid.UUID, now time.Time) (*time.Time, *time.Time, error) {
	var lastModel BookingModel
	var last *time.Time
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND end_date < ?", itemID, now).
		Order("end_date DESC").
		First(&lastModel).Error
	switch {
	case err == nil:
		last = &lastModel.EndDate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("failed to find last booking: %w", err)
	}

	var nextModel BookingModel
	var next *time.Time
	err = r.db.WithContext(ctx).
		Where("item_id = ? AND start_date > ?", itemID, now).
		Order("start_date ASC").
		First(&nextModel).Error
	switch {
	case err == nil:
		next = &nextModel.StartDate
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, fmt.Errorf("failed to find next booking: %w", err)
	}

	return last, next, nil
}

// --- Query Helpers ---

func (r *GormBookingRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Owner").
		Preload("Booker")
}

func (r *GormBookingRepository) byBooker(ctx context.Context, bookerID uuid.UUID) *gorm.DB {
	return r.withAssociations(ctx).Where("bookings.booker_id = ?", bookerID)
}

func (r *GormBookingRepository) byOwner(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.withAssociations(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
}

func (r *GormBookingRepository) findBookings(ctx context.Context, query *gorm.DB) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := query.Order("bookings.start_date ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings, nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		StartDate: b.Start(),
		EndDate:   b.End(),
		ItemID:    b.Item().ID(),
		BookerID:  b.Booker().ID(),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartDate,
		m.EndDate,
		*toDomainItem(&m.Item),
		*toDomainUser(&m.Booker),
		bookingDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
