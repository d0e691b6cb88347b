package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/messaging"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

const (
	BookingCreated     = "booking.created"
	BookingUpdated     = "booking.updated"
	BookingRescheduled = "booking.rescheduled"
	BookingCancelled   = "booking.cancelled"
	BookingConfirmed   = "booking.confirmed"
	BookingCompleted   = "booking.completed"
)

const publishTimeout = 2 * time.Second

// Emitter announces committed changes. Delivery is best effort.
type Emitter interface {
	Emit(ctx context.Context, eventType string, payload interface{})
}

type EventService struct {
	publisher messaging.Publisher
	channel   string
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewEventService(publisher messaging.Publisher, channel string, m *metrics.Metrics, log *logger.Logger) *EventService {
	return &EventService{
		publisher: publisher,
		channel:   channel,
		metrics:   m,
		logger:    log,
	}
}

// Emit publishes the event on the configured channel. Failures are logged
// and counted, never returned: the change they describe is already stored.
func (s *EventService) Emit(ctx context.Context, eventType string, payload interface{}) {
	msg := messaging.Message{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	// the request may already be finishing; publishing must not inherit its cancellation
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, s.channel, msg); err != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		s.logger.Error(err, "failed to publish event", "event_type", eventType, "event_id", msg.ID)
		return
	}
	s.metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
	s.logger.Debug("event published", "event_type", eventType, "event_id", msg.ID)
}
