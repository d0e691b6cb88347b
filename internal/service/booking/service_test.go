package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/mocks"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	"github.com/jwalitptl/salon-api/internal/service/event"
	"github.com/jwalitptl/salon-api/internal/service/notification"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, n notification.Notice) error {
	return m.Called(ctx, n).Error(0)
}

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) Emit(ctx context.Context, eventType string, payload interface{}) {
	m.Called(ctx, eventType, payload)
}

var (
	created = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	slot    = time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)
)

type fixture struct {
	repo     *mocks.BookingRepository
	logs     *mocks.EmailLogRepository
	notifier *mockNotifier
	events   *mockEmitter
	metrics  *metrics.Metrics
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(mocks.BookingRepository),
		logs:     new(mocks.EmailLogRepository),
		notifier: new(mockNotifier),
		events:   new(mockEmitter),
		metrics:  metrics.NewMetrics("test", prometheus.NewRegistry()),
	}
	f.svc = NewService(f.repo, f.logs, f.notifier, f.events, f.metrics, logger.Nop())
	f.svc.now = func() time.Time { return created }
	return f
}

func (f *fixture) allowEvents() {
	f.events.On("Emit", mock.Anything, mock.Anything, mock.Anything).Maybe()
}

func storedBooking(status model.BookingStatus) *model.Booking {
	return &model.Booking{
		ID:               1,
		DateTime:         slot,
		CustomerID:       2,
		StylistID:        3,
		ServiceID:        4,
		Status:           status,
		CreatedDate:      created,
		LastModifiedDate: created,
		Version:          1,
	}
}

// captureUpdate records the booking handed to the repository.
func (f *fixture) captureUpdate(err error) *model.Booking {
	saved := &model.Booking{}
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Booking")).
		Run(func(args mock.Arguments) {
			*saved = *args.Get(1).(*model.Booking)
		}).Return(err).Once()
	return saved
}

func TestCreateBooking_StartsPending(t *testing.T) {
	f := newFixture()
	notes := "first visit"
	req := &model.BookingRequest{DateTime: slot, CustomerID: 2, StylistID: 3, ServiceID: 4, Notes: &notes}

	saved := &model.Booking{}
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Booking")).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*model.Booking)
			b.ID = 1
			*saved = *b
		}).Return(nil)
	view := &model.BookingDetails{Booking: *storedBooking(model.BookingStatusPending), CustomerName: "Jane Doe"}
	f.repo.On("GetDetails", mock.Anything, int64(1)).Return(view, nil)
	f.events.On("Emit", mock.Anything, event.BookingCreated, view).Once()

	got, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, view, got)

	assert.Equal(t, model.BookingStatusPending, saved.Status)
	assert.Equal(t, saved.CreatedDate, saved.LastModifiedDate)
	assert.Equal(t, created, saved.CreatedDate)
	assert.Equal(t, "first visit", saved.Notes)
	assert.Empty(t, saved.CancellationReason)

	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	f.events.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingTransitions.WithLabelValues("Pending", "ok")))
}

func TestCreateBooking_DefaultsNotesAndNormalizesTime(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	local := time.FixedZone("CET", 3600)
	req := &model.BookingRequest{
		DateTime:   time.Date(2026, 4, 10, 15, 30, 0, 123456789, local),
		CustomerID: 2, StylistID: 3, ServiceID: 4,
	}

	saved := &model.Booking{}
	f.repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*saved = *args.Get(1).(*model.Booking)
	}).Return(nil)
	f.repo.On("GetDetails", mock.Anything, mock.Anything).Return(&model.BookingDetails{}, nil)

	_, err := f.svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "", saved.Notes)
	assert.Equal(t, time.UTC, saved.DateTime.Location())
	assert.Equal(t, time.Date(2026, 4, 10, 14, 30, 0, 123456000, time.UTC), saved.DateTime)
}

func TestCreateBooking_AcceptsPastDates(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	req := &model.BookingRequest{DateTime: created.AddDate(-1, 0, 0), CustomerID: 2, StylistID: 3, ServiceID: 4}

	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("GetDetails", mock.Anything, mock.Anything).Return(&model.BookingDetails{}, nil)

	_, err := f.svc.CreateBooking(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateBooking_Errors(t *testing.T) {
	req := &model.BookingRequest{DateTime: slot, CustomerID: 2, StylistID: 3, ServiceID: 4}

	t.Run("invalid reference", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrInvalidReference)

		_, err := f.svc.CreateBooking(context.Background(), req)
		assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
		f.events.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing after create", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("GetDetails", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

		_, err := f.svc.CreateBooking(context.Background(), req)
		assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
	})
}

func TestGetBooking(t *testing.T) {
	f := newFixture()
	view := &model.BookingDetails{Booking: *storedBooking(model.BookingStatusPending)}
	f.repo.On("GetDetails", mock.Anything, int64(1)).Return(view, nil)
	f.repo.On("GetDetails", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

	first, err := f.svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	second, err := f.svc.GetBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	_, err = f.svc.GetBooking(context.Background(), 9)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestUpdateBooking_KeepsStatus(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusConfirmed), nil)
	saved := f.captureUpdate(nil)

	later := slot.Add(24 * time.Hour)
	err := f.svc.UpdateBooking(context.Background(), 1, &model.BookingRequest{DateTime: later, CustomerID: 5, StylistID: 6, ServiceID: 7})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, saved.Status)
	assert.Equal(t, later, saved.DateTime)
	assert.Equal(t, int64(5), saved.CustomerID)
	assert.Equal(t, int64(6), saved.StylistID)
	assert.Equal(t, int64(7), saved.ServiceID)
	assert.True(t, saved.LastModifiedDate.After(saved.CreatedDate))
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestUpdateBooking_VersionMismatch(t *testing.T) {
	req := &model.BookingRequest{DateTime: slot, CustomerID: 2, StylistID: 3, ServiceID: 4}

	t.Run("row still there", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusPending), nil)
		f.captureUpdate(repository.ErrConflict)
		f.repo.On("Exists", mock.Anything, int64(1)).Return(true, nil)

		err := f.svc.UpdateBooking(context.Background(), 1, req)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("row gone", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusPending), nil)
		f.captureUpdate(repository.ErrConflict)
		f.repo.On("Exists", mock.Anything, int64(1)).Return(false, nil)

		err := f.svc.UpdateBooking(context.Background(), 1, req)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Get", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)

		err := f.svc.UpdateBooking(context.Background(), 1, req)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestRescheduleBooking(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusPending), nil)
	saved := f.captureUpdate(nil)

	newSlot := time.Date(2026, 4, 12, 16, 0, 0, 0, time.UTC)
	f.notifier.On("Notify", mock.Anything, notification.Notice{
		BookingID:  1,
		CustomerID: 2,
		Type:       model.NotificationAppointmentRescheduled,
		Subject:    "Your appointment has been rescheduled",
		Body:       "Your appointment has been rescheduled to 2026-04-12 16:00 UTC. Reason: stylist ill",
	}).Return(nil).Once()

	err := f.svc.RescheduleBooking(context.Background(), 1, newSlot, "  stylist ill ")
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusRescheduled, saved.Status)
	assert.Equal(t, newSlot, saved.DateTime)
	// the clock has not moved since creation, the save must still advance the timestamp
	assert.True(t, saved.LastModifiedDate.After(created))
	f.notifier.AssertExpectations(t)
}

func TestRescheduleBooking_WithoutReason(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	cancelled := storedBooking(model.BookingStatusCancelled)
	cancelled.CancellationReason = "double booked"
	f.repo.On("Get", mock.Anything, int64(1)).Return(cancelled, nil)
	saved := f.captureUpdate(nil)

	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notification.Notice) bool {
		return n.Body == "Your appointment has been rescheduled to 2026-04-10 14:30 UTC."
	})).Return(nil).Once()

	require.NoError(t, f.svc.RescheduleBooking(context.Background(), 1, slot, ""))
	assert.Empty(t, saved.CancellationReason)
	f.notifier.AssertExpectations(t)
}

func TestCancelBooking(t *testing.T) {
	for _, reason := range []string{"feeling unwell", ""} {
		t.Run("reason "+reason, func(t *testing.T) {
			f := newFixture()
			f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusConfirmed), nil)
			saved := f.captureUpdate(nil)
			f.events.On("Emit", mock.Anything, event.BookingCancelled, mock.Anything).Once()
			f.notifier.On("Notify", mock.Anything, notification.Notice{
				BookingID:  1,
				CustomerID: 2,
				Type:       model.NotificationAppointmentDeleted,
				Subject:    "Your appointment has been cancelled",
				Body:       "Your appointment scheduled for 2026-04-10 14:30 UTC has been cancelled. Reason: " + reason,
			}).Return(nil).Once()

			require.NoError(t, f.svc.CancelBooking(context.Background(), 1, reason))

			assert.Equal(t, model.BookingStatusCancelled, saved.Status)
			assert.Equal(t, reason, saved.CancellationReason)
			f.notifier.AssertExpectations(t)
			f.events.AssertExpectations(t)
		})
	}
}

func TestCancelBooking_TransportFailureAfterCommit(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusPending), nil)
	f.captureUpdate(nil)
	f.notifier.On("Notify", mock.Anything, mock.Anything).Return(apperrors.Transport(errors.New("smtp down")))

	err := f.svc.CancelBooking(context.Background(), 1, "no show")
	assert.True(t, apperrors.Is(err, apperrors.ErrTransport))
	f.repo.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBooking_NoNotificationOnConflict(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusPending), nil)
	f.captureUpdate(repository.ErrConflict)
	f.repo.On("Exists", mock.Anything, int64(1)).Return(true, nil)

	err := f.svc.CancelBooking(context.Background(), 1, "no show")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingTransitions.WithLabelValues("Cancelled", "conflict")))
}

func TestConfirmBooking(t *testing.T) {
	tests := []struct {
		from model.BookingStatus
		ok   bool
	}{
		{model.BookingStatusPending, true},
		{model.BookingStatusRescheduled, true},
		{model.BookingStatusConfirmed, false},
		{model.BookingStatusCancelled, false},
		{model.BookingStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			f := newFixture()
			f.allowEvents()
			f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(tt.from), nil)

			if !tt.ok {
				err := f.svc.ConfirmBooking(context.Background(), 1)
				assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
				f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}

			saved := f.captureUpdate(nil)
			require.NoError(t, f.svc.ConfirmBooking(context.Background(), 1))
			assert.Equal(t, model.BookingStatusConfirmed, saved.Status)
			f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		})
	}
}

func TestCompleteBooking(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusConfirmed), nil)
	saved := f.captureUpdate(nil)
	f.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n notification.Notice) bool {
		return n.Type == model.NotificationAppointmentCompleted && n.Subject == "Your appointment has been completed"
	})).Return(nil).Once()

	require.NoError(t, f.svc.CompleteBooking(context.Background(), 1))
	assert.Equal(t, model.BookingStatusCompleted, saved.Status)
	f.notifier.AssertExpectations(t)
}

func TestCompleteBooking_FromCancelled(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, int64(1)).Return(storedBooking(model.BookingStatusCancelled), nil)

	err := f.svc.CompleteBooking(context.Background(), 1)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestGetEmailLogs(t *testing.T) {
	f := newFixture()
	logs := []*model.EmailLog{{ID: 1, BookingID: 1}, {ID: 2, BookingID: 1}}
	f.repo.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.repo.On("Exists", mock.Anything, int64(9)).Return(false, nil)
	f.logs.On("ListByBooking", mock.Anything, int64(1)).Return(logs, nil)

	got, err := f.svc.GetEmailLogs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, logs, got)

	_, err = f.svc.GetEmailLogs(context.Background(), 9)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	f.logs.AssertNotCalled(t, "ListByBooking", mock.Anything, int64(9))
}

func TestTouch_StrictlyIncreases(t *testing.T) {
	f := newFixture()
	b := storedBooking(model.BookingStatusPending)

	f.svc.now = func() time.Time { return created.Add(-time.Hour) }
	f.svc.touch(b)
	assert.Equal(t, created.Add(time.Microsecond), b.LastModifiedDate)

	f.svc.now = func() time.Time { return created.Add(time.Hour) }
	f.svc.touch(b)
	assert.Equal(t, created.Add(time.Hour), b.LastModifiedDate)
}
