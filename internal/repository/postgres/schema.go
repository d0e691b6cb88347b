package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		full_name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stylists (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		specialty VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		price NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		date_time TIMESTAMPTZ NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		stylist_id BIGINT NOT NULL REFERENCES stylists(id),
		service_id BIGINT NOT NULL REFERENCES services(id),
		status VARCHAR(20) NOT NULL DEFAULT 'Pending',
		notes TEXT NOT NULL DEFAULT '',
		cancellation_reason TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMPTZ NOT NULL,
		last_modified_date TIMESTAMPTZ NOT NULL,
		version BIGINT NOT NULL DEFAULT 1,
		CHECK (last_modified_date >= created_date)
	)`,
	`CREATE TABLE IF NOT EXISTS email_logs (
		id BIGSERIAL PRIMARY KEY,
		booking_id BIGINT NOT NULL REFERENCES bookings(id),
		notification_type VARCHAR(40) NOT NULL,
		recipient VARCHAR(100) NOT NULL,
		subject VARCHAR(200) NOT NULL,
		message TEXT NOT NULL,
		status VARCHAR(10) NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		sent_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer_id ON bookings(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_stylist_id ON bookings(stylist_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_logs_booking_id ON email_logs(booking_id)`,
}

// Migrate creates any missing tables. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return tx.Commit()
}
