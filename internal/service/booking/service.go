package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service"
	"github.com/jwalitptl/salon-api/internal/service/event"
	"github.com/jwalitptl/salon-api/internal/service/notification"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

// DateTimeLayout is how appointment times are written in customer emails.
const DateTimeLayout = "2006-01-02 15:04 MST"

const resource = "booking"

// Service owns the booking lifecycle: it applies transitions, persists them
// and sends the customer notifications they call for.
type Service struct {
	repo     repository.BookingRepository
	logs     repository.EmailLogRepository
	notifier notification.Service
	events   event.Emitter
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(
	repo repository.BookingRepository,
	logs repository.EmailLogRepository,
	notifier notification.Service,
	events event.Emitter,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		logs:     logs,
		notifier: notifier,
		events:   events,
		metrics:  m,
		logger:   log,
		now:      time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, req *model.BookingRequest) (*model.BookingDetails, error) {
	now := s.timestamp()
	b := &model.Booking{
		DateTime:         normalize(req.DateTime),
		CustomerID:       req.CustomerID,
		StylistID:        req.StylistID,
		ServiceID:        req.ServiceID,
		Status:           model.BookingStatusPending,
		Notes:            stringValue(req.Notes),
		CreatedDate:      now,
		LastModifiedDate: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.observe(model.BookingStatusPending, err)
		return nil, service.FromRepository(resource, err)
	}

	details, err := s.repo.GetDetails(ctx, b.ID)
	if errors.Is(err, repository.ErrNotFound) {
		err = apperrors.Internal(fmt.Errorf("booking %d missing after create: %w", b.ID, err))
	}
	if err != nil {
		s.observe(model.BookingStatusPending, err)
		return nil, service.FromRepository(resource, err)
	}

	s.observe(model.BookingStatusPending, nil)
	s.logger.Info("booking created", "booking_id", b.ID)
	s.events.Emit(ctx, event.BookingCreated, details)
	return details, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*model.BookingDetails, error) {
	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return details, nil
}

func (s *Service) ListBookings(ctx context.Context) ([]*model.BookingDetails, error) {
	bookings, err := s.repo.ListDetails(ctx)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return bookings, nil
}

// UpdateBooking overwrites every mutable field. The status is left alone.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req *model.BookingRequest) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	b.DateTime = normalize(req.DateTime)
	b.CustomerID = req.CustomerID
	b.StylistID = req.StylistID
	b.ServiceID = req.ServiceID
	b.Notes = stringValue(req.Notes)

	if err := s.save(ctx, b); err != nil {
		return err
	}

	s.logger.Info("booking updated", "booking_id", b.ID)
	s.events.Emit(ctx, event.BookingUpdated, b)
	return nil
}

func (s *Service) RescheduleBooking(ctx context.Context, id int64, newDateTime time.Time, reason string) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	b.DateTime = normalize(newDateTime)
	b.Status = model.BookingStatusRescheduled
	b.CancellationReason = ""

	if err := s.transition(ctx, b, event.BookingRescheduled); err != nil {
		return err
	}

	return s.notifier.Notify(ctx, notification.Notice{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Type:       model.NotificationAppointmentRescheduled,
		Subject:    "Your appointment has been rescheduled",
		Body:       rescheduledBody(b.DateTime, reason),
	})
}

// CancelBooking stores reason verbatim; an empty reason is allowed.
func (s *Service) CancelBooking(ctx context.Context, id int64, reason string) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	b.Status = model.BookingStatusCancelled
	b.CancellationReason = reason

	if err := s.transition(ctx, b, event.BookingCancelled); err != nil {
		return err
	}

	return s.notifier.Notify(ctx, notification.Notice{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Type:       model.NotificationAppointmentDeleted,
		Subject:    "Your appointment has been cancelled",
		Body: fmt.Sprintf("Your appointment scheduled for %s has been cancelled. Reason: %s",
			b.DateTime.Format(DateTimeLayout), reason),
	})
}

func (s *Service) ConfirmBooking(ctx context.Context, id int64) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkTransition(b.Status, model.BookingStatusConfirmed); err != nil {
		s.observe(model.BookingStatusConfirmed, err)
		return err
	}

	b.Status = model.BookingStatusConfirmed
	b.CancellationReason = ""

	return s.transition(ctx, b, event.BookingConfirmed)
}

func (s *Service) CompleteBooking(ctx context.Context, id int64) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := checkTransition(b.Status, model.BookingStatusCompleted); err != nil {
		s.observe(model.BookingStatusCompleted, err)
		return err
	}

	b.Status = model.BookingStatusCompleted
	b.CancellationReason = ""

	if err := s.transition(ctx, b, event.BookingCompleted); err != nil {
		return err
	}

	return s.notifier.Notify(ctx, notification.Notice{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Type:       model.NotificationAppointmentCompleted,
		Subject:    "Your appointment has been completed",
		Body: fmt.Sprintf("Your appointment scheduled for %s has been completed. Thank you for visiting!",
			b.DateTime.Format(DateTimeLayout)),
	})
}

// GetEmailLogs returns the notifications recorded for a booking, oldest first.
func (s *Service) GetEmailLogs(ctx context.Context, bookingID int64) ([]*model.EmailLog, error) {
	exists, err := s.repo.Exists(ctx, bookingID)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	if !exists {
		return nil, apperrors.NotFound(resource, nil)
	}

	logs, err := s.logs.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, service.FromRepository("email log", err)
	}
	return logs, nil
}

func (s *Service) load(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, service.FromRepository(resource, err)
	}
	return b, nil
}

// transition saves a status change, records it and announces it.
func (s *Service) transition(ctx context.Context, b *model.Booking, eventType string) error {
	err := s.save(ctx, b)
	s.observe(b.Status, err)
	if err != nil {
		return err
	}

	s.logger.Info("booking status changed", "booking_id", b.ID, "status", string(b.Status))
	s.events.Emit(ctx, eventType, b)
	return nil
}

// save bumps the modification time and writes b guarded by its version. A
// version mismatch on a booking that has since vanished reads as not found.
func (s *Service) save(ctx context.Context, b *model.Booking) error {
	s.touch(b)

	err := s.repo.Update(ctx, b)
	if !errors.Is(err, repository.ErrConflict) {
		return service.FromRepository(resource, err)
	}

	exists, xerr := s.repo.Exists(ctx, b.ID)
	if xerr != nil {
		return service.FromRepository(resource, xerr)
	}
	if !exists {
		return apperrors.NotFound(resource, err)
	}
	return service.FromRepository(resource, err)
}

// touch moves LastModifiedDate strictly forward, even if the clock did not.
func (s *Service) touch(b *model.Booking) {
	now := s.timestamp()
	if !now.After(b.LastModifiedDate) {
		now = b.LastModifiedDate.Add(time.Microsecond)
	}
	b.LastModifiedDate = now
}

func (s *Service) timestamp() time.Time {
	return normalize(s.now())
}

func (s *Service) observe(status model.BookingStatus, err error) {
	result := "ok"
	switch {
	case err == nil:
	case apperrors.Is(err, apperrors.ErrConflict):
		result = "conflict"
	case apperrors.Is(err, apperrors.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	s.metrics.BookingTransitions.WithLabelValues(string(status), result).Inc()
}

var allowedSources = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusConfirmed: {model.BookingStatusPending, model.BookingStatusRescheduled},
	model.BookingStatusCompleted: {model.BookingStatusPending, model.BookingStatusConfirmed, model.BookingStatusRescheduled},
}

func checkTransition(from, to model.BookingStatus) error {
	for _, s := range allowedSources[to] {
		if s == from {
			return nil
		}
	}
	return apperrors.Conflict(fmt.Sprintf("invalid transition from %s to %s", from, to), nil)
}

func rescheduledBody(at time.Time, reason string) string {
	body := fmt.Sprintf("Your appointment has been rescheduled to %s.", at.Format(DateTimeLayout))
	if r := strings.TrimSpace(reason); r != "" {
		body += " Reason: " + r
	}
	return body
}

// normalize brings times to the precision both stores keep.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
