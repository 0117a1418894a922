package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	bookingDomain "github.com/borrowspace/service-sharing/internal/domain/booking"
)

const eventSource = "service-sharing"

// BookingPublisher publishes booking lifecycle events to Kafka. Publishing is
// best-effort: failures are logged and never fail the triggering request.
type BookingPublisher struct {
	producer *Producer
	logger   *zap.Logger
}

// NewBookingPublisher creates a new BookingPublisher.
func NewBookingPublisher(producer *Producer, logger *zap.Logger) *BookingPublisher {
	return &BookingPublisher{producer: producer, logger: logger}
}

// BookingRequested publishes a booking.requested event.
func (p *BookingPublisher) BookingRequested(ctx context.Context, b *bookingDomain.Booking) {
	evt := BookingRequestedEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID(),
		OwnerID:    b.Item().OwnerID(),
		BookerID:   b.Booker().ID(),
		Start:      b.Start(),
		End:        b.End(),
		OccurredAt: time.Now().UTC(),
	}
	p.publish(ctx, BookingRequested, b, evt)
}

// BookingDecided publishes a booking.approved or booking.rejected event
// depending on the booking's status.
func (p *BookingPublisher) BookingDecided(ctx context.Context, b *bookingDomain.Booking) {
	eventType := BookingApproved
	if b.Status() == bookingDomain.StatusRejected {
		eventType = BookingRejected
	}

	evt := BookingDecidedEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID(),
		OwnerID:    b.Item().OwnerID(),
		BookerID:   b.Booker().ID(),
		Status:     b.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	p.publish(ctx, eventType, b, evt)
}

func (p *BookingPublisher) publish(ctx context.Context, eventType string, b *bookingDomain.Booking, data any) {
	ce, err := NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, b.ID().String(), ce); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// NopBookingPublisher discards all events. Used when Kafka is disabled.
type NopBookingPublisher struct{}

func (NopBookingPublisher) BookingRequested(context.Context, *bookingDomain.Booking) {}
func (NopBookingPublisher) BookingDecided(context.Context, *bookingDomain.Booking)   {}
