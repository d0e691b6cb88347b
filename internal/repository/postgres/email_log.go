package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

func (r *emailLogRepository) Create(ctx context.Context, log *model.EmailLog) error {
	query := `
		INSERT INTO email_logs (
			booking_id, notification_type, recipient, subject,
			message, status, error, sent_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		log.BookingID,
		log.NotificationType,
		log.Recipient,
		log.Subject,
		log.Message,
		log.Status,
		log.Error,
		log.SentDate,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to create email log: %w", translateError(err, repository.ErrInvalidReference))
	}
	return nil
}

func (r *emailLogRepository) ListByBooking(ctx context.Context, bookingID int64) ([]*model.EmailLog, error) {
	query := `
		SELECT id, booking_id, notification_type, recipient, subject,
			   message, status, error, sent_date
		FROM email_logs
		WHERE booking_id = ?
		ORDER BY id
	`
	logs := []*model.EmailLog{}
	if err := r.db.SelectContext(ctx, &logs, r.db.Rebind(query), bookingID); err != nil {
		return nil, fmt.Errorf("failed to list email logs for booking %d: %w", bookingID, err)
	}
	for _, l := range logs {
		l.SentDate = l.SentDate.UTC()
	}
	return logs, nil
}
