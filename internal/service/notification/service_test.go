package notification

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
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

type fixture struct {
	customers *mocks.CustomerRepository
	logs      *mocks.EmailLogRepository
	sender    *mocks.Sender
	metrics   *metrics.Metrics
	svc       *service
}

func newFixture(timeout time.Duration) *fixture {
	f := &fixture{
		customers: new(mocks.CustomerRepository),
		logs:      new(mocks.EmailLogRepository),
		sender:    new(mocks.Sender),
		metrics:   metrics.NewMetrics("test", prometheus.NewRegistry()),
	}
	f.svc = NewService(f.customers, f.logs, f.sender, timeout, f.metrics, logger.Nop()).(*service)
	f.svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

var notice = Notice{
	BookingID:  7,
	CustomerID: 3,
	Type:       model.NotificationAppointmentDeleted,
	Subject:    "Your appointment has been cancelled",
	Body:       "Your appointment scheduled for 2026-05-02 10:00 UTC has been cancelled. Reason: sick",
}

func TestNotify_SendsAndLogs(t *testing.T) {
	f := newFixture(time.Second)

	f.customers.On("Get", mock.Anything, int64(3)).Return(&model.Customer{ID: 3, Email: "jane@example.com"}, nil)
	f.sender.On("Send", mock.Anything, "jane@example.com", notice.Subject, notice.Body).Return(nil).Once()
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *model.EmailLog) bool {
		return l.BookingID == 7 &&
			l.NotificationType == model.NotificationAppointmentDeleted &&
			l.Status == model.EmailStatusSent &&
			l.Message == notice.Body &&
			l.Recipient == "jane@example.com" &&
			l.SentDate.Equal(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	require.NoError(t, f.svc.Notify(context.Background(), notice))

	f.sender.AssertExpectations(t)
	f.logs.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Notifications.WithLabelValues(string(notice.Type), metrics.OutcomeSent)))
}

func TestNotify_SkipsWithoutEmail(t *testing.T) {
	tests := []struct {
		name     string
		customer *model.Customer
		err      error
	}{
		{"empty email", &model.Customer{ID: 3}, nil},
		{"blank email", &model.Customer{ID: 3, Email: "   "}, nil},
		{"missing customer", nil, repository.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(time.Second)
			f.customers.On("Get", mock.Anything, int64(3)).Return(tt.customer, tt.err)

			require.NoError(t, f.svc.Notify(context.Background(), notice))

			f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Notifications.WithLabelValues(string(notice.Type), metrics.OutcomeSkipped)))
		})
	}
}

func TestNotify_TransportFailureIsLoggedAndReturned(t *testing.T) {
	f := newFixture(time.Second)
	boom := errors.New("dial tcp 127.0.0.1:25: connection refused")

	f.customers.On("Get", mock.Anything, int64(3)).Return(&model.Customer{ID: 3, Email: "jane@example.com"}, nil)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(boom)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(l *model.EmailLog) bool {
		return l.Status == model.EmailStatusFailed && l.Error == boom.Error()
	})).Return(nil).Once()

	err := f.svc.Notify(context.Background(), notice)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrTransport))
	assert.ErrorIs(t, err, boom)
	f.logs.AssertExpectations(t)
}

func TestNotify_SendIsBoundedByTimeout(t *testing.T) {
	f := newFixture(10 * time.Millisecond)

	f.customers.On("Get", mock.Anything, int64(3)).Return(&model.Customer{ID: 3, Email: "jane@example.com"}, nil)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok, "send context must carry a deadline")
			<-ctx.Done()
		})
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Notify(context.Background(), notice)
	assert.True(t, apperrors.Is(err, apperrors.ErrTransport))
}

func TestNotify_LogWriteFailure(t *testing.T) {
	f := newFixture(time.Second)

	f.customers.On("Get", mock.Anything, int64(3)).Return(&model.Customer{ID: 3, Email: "jane@example.com"}, nil)
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := f.svc.Notify(context.Background(), notice)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
}

func TestNotify_CustomerLookupFailure(t *testing.T) {
	f := newFixture(time.Second)
	f.customers.On("Get", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	err := f.svc.Notify(context.Background(), notice)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
	f.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
