// Package testutil provides an in-memory store for repository and HTTP tests.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// sqlite flavour of the postgres schema. Foreign keys stay off, matching
// SQLite's default, so reference errors are covered by the postgres error tests.
var schema = []string{
	`CREATE TABLE customers (
		id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE stylists (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		specialty TEXT NOT NULL
	)`,
	`CREATE TABLE services (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE bookings (
		id INTEGER PRIMARY KEY,
		date_time TIMESTAMP NOT NULL,
		customer_id INTEGER NOT NULL,
		stylist_id INTEGER NOT NULL,
		service_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT NOT NULL DEFAULT '',
		cancellation_reason TEXT NOT NULL DEFAULT '',
		created_date TIMESTAMP NOT NULL,
		last_modified_date TIMESTAMP NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE email_logs (
		id INTEGER PRIMARY KEY,
		booking_id INTEGER NOT NULL,
		notification_type TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		sent_date TIMESTAMP NOT NULL
	)`,
}

// NewSQLiteDB opens a fresh in-memory database with the salon schema.
// It is closed when the test finishes.
func NewSQLiteDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}
