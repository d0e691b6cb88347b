package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/salon-api/internal/email"
	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
	"github.com/jwalitptl/salon-api/pkg/logger"
	"github.com/jwalitptl/salon-api/pkg/metrics"
)

const DefaultSendTimeout = 10 * time.Second

// Notice is one email about a booking, addressed to the booking's customer.
type Notice struct {
	BookingID  int64
	CustomerID int64
	Type       model.EmailNotificationType
	Subject    string
	Body       string
}

type Service interface {
	// Notify emails the customer and records the attempt. Customers without an
	// address are skipped silently. A failed send is logged and returned as a
	// transport error.
	Notify(ctx context.Context, n Notice) error
}

type service struct {
	customers repository.CustomerRepository
	logs      repository.EmailLogRepository
	sender    email.Sender
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(
	customers repository.CustomerRepository,
	logs repository.EmailLogRepository,
	sender email.Sender,
	timeout time.Duration,
	m *metrics.Metrics,
	log *logger.Logger,
) Service {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &service{
		customers: customers,
		logs:      logs,
		sender:    sender,
		timeout:   timeout,
		metrics:   m,
		logger:    log,
		now:       time.Now,
	}
}

func (s *service) Notify(ctx context.Context, n Notice) error {
	recipient, err := s.recipient(ctx, n.CustomerID)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to resolve recipient for booking %d: %w", n.BookingID, err))
	}
	if recipient == "" {
		s.metrics.Notifications.WithLabelValues(string(n.Type), metrics.OutcomeSkipped).Inc()
		s.logger.Debug("no email address, notification skipped", "booking_id", n.BookingID, "type", string(n.Type))
		return nil
	}

	sendErr := s.send(ctx, recipient, n)

	entry := &model.EmailLog{
		BookingID:        n.BookingID,
		NotificationType: n.Type,
		Recipient:        recipient,
		Subject:          n.Subject,
		Message:          n.Body,
		Status:           model.EmailStatusSent,
		SentDate:         s.now().UTC().Truncate(time.Microsecond),
	}
	if sendErr != nil {
		entry.Status = model.EmailStatusFailed
		entry.Error = sendErr.Error()
	}

	// the send may have used up the request deadline; the audit row is still written
	if err := s.logs.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error(err, "failed to record email log", "booking_id", n.BookingID, "type", string(n.Type))
		return apperrors.Internal(fmt.Errorf("failed to record email log: %w", err))
	}

	if sendErr != nil {
		s.metrics.Notifications.WithLabelValues(string(n.Type), metrics.OutcomeFailed).Inc()
		s.logger.Error(sendErr, "notification delivery failed", "booking_id", n.BookingID, "type", string(n.Type))
		return apperrors.Transport(sendErr)
	}

	s.metrics.Notifications.WithLabelValues(string(n.Type), metrics.OutcomeSent).Inc()
	s.logger.Info("notification sent", "booking_id", n.BookingID, "type", string(n.Type))
	return nil
}

// recipient returns the customer's address, or "" when there is nobody to mail.
func (s *service) recipient(ctx context.Context, customerID int64) (string, error) {
	c, err := s.customers.Get(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(c.Email), nil
}

func (s *service) send(ctx context.Context, to string, n Notice) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.sender.Send(sendCtx, to, n.Subject, n.Body)
	s.metrics.NotificationDelay.Observe(time.Since(start).Seconds())
	return err
}
