package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository"
)

const bookingColumns = `
	b.id, b.date_time, b.customer_id, b.stylist_id, b.service_id,
	b.status, b.notes, b.cancellation_reason,
	b.created_date, b.last_modified_date, b.version`

const bookingDetailsQuery = `
	SELECT ` + bookingColumns + `,
		COALESCE(c.full_name, '') AS customer_name,
		COALESCE(st.name, '') AS stylist_name,
		COALESCE(sv.name, '') AS service_name
	FROM bookings b
	LEFT JOIN customers c ON c.id = b.customer_id
	LEFT JOIN stylists st ON st.id = b.stylist_id
	LEFT JOIN services sv ON sv.id = b.service_id`

func (r *bookingRepository) Create(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (
			date_time, customer_id, stylist_id, service_id,
			status, notes, cancellation_reason,
			created_date, last_modified_date, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(query),
		b.DateTime,
		b.CustomerID,
		b.StylistID,
		b.ServiceID,
		b.Status,
		b.Notes,
		b.CancellationReason,
		b.CreatedDate,
		b.LastModifiedDate,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", translateError(err, repository.ErrInvalidReference))
	}
	b.Version = 1
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = ?`

	var b model.Booking
	if err := r.db.GetContext(ctx, &b, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, translateError(err, repository.ErrInvalidReference))
	}
	normalizeBooking(&b)
	return &b, nil
}

func (r *bookingRepository) GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error) {
	query := bookingDetailsQuery + ` WHERE b.id = ?`

	var d model.BookingDetails
	if err := r.db.GetContext(ctx, &d, r.db.Rebind(query), id); err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, translateError(err, repository.ErrInvalidReference))
	}
	normalizeBooking(&d.Booking)
	return &d, nil
}

func (r *bookingRepository) ListDetails(ctx context.Context) ([]*model.BookingDetails, error) {
	query := bookingDetailsQuery + ` ORDER BY b.id`

	bookings := []*model.BookingDetails{}
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	for _, d := range bookings {
		normalizeBooking(&d.Booking)
	}
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *model.Booking) error {
	query := `
		UPDATE bookings
		SET date_time = ?, customer_id = ?, stylist_id = ?, service_id = ?,
			status = ?, notes = ?, cancellation_reason = ?,
			last_modified_date = ?, version = version + 1
		WHERE id = ? AND version = ?
	`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		b.DateTime,
		b.CustomerID,
		b.StylistID,
		b.ServiceID,
		b.Status,
		b.Notes,
		b.CancellationReason,
		b.LastModifiedDate,
		b.ID,
		b.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", b.ID, translateError(err, repository.ErrInvalidReference))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %d version %d: %w", b.ID, b.Version, repository.ErrConflict)
	}

	b.Version++
	return nil
}

func (r *bookingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = ?)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, r.db.Rebind(query), id); err != nil {
		return false, fmt.Errorf("failed to check booking %d: %w", id, err)
	}
	return exists, nil
}

func normalizeBooking(b *model.Booking) {
	b.DateTime = b.DateTime.UTC()
	b.CreatedDate = b.CreatedDate.UTC()
	b.LastModifiedDate = b.LastModifiedDate.UTC()
}
