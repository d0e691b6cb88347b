package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/salon-api/internal/model"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the row changed since it was read.
	ErrConflict = errors.New("record was modified concurrently")
	// ErrInvalidReference means a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInUse means the row is still referenced and cannot be deleted.
	ErrInUse = errors.New("record is referenced by other records")
)

// All repository interfaces in one file
type (
	BookingRepository interface {
		// Create inserts b with version 1 and sets its ID.
		Create(ctx context.Context, b *model.Booking) error
		Get(ctx context.Context, id int64) (*model.Booking, error)
		GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error)
		ListDetails(ctx context.Context) ([]*model.BookingDetails, error)
		// Update saves b if its version still matches the stored one and bumps b.Version.
		Update(ctx context.Context, b *model.Booking) error
		Exists(ctx context.Context, id int64) (bool, error)
	}

	EmailLogRepository interface {
		Create(ctx context.Context, log *model.EmailLog) error
		ListByBooking(ctx context.Context, bookingID int64) ([]*model.EmailLog, error)
	}

	CustomerRepository interface {
		Create(ctx context.Context, c *model.Customer) error
		Get(ctx context.Context, id int64) (*model.Customer, error)
		List(ctx context.Context) ([]*model.Customer, error)
		Update(ctx context.Context, c *model.Customer) error
		Delete(ctx context.Context, id int64) error
	}

	StylistRepository interface {
		Create(ctx context.Context, s *model.Stylist) error
		Get(ctx context.Context, id int64) (*model.Stylist, error)
		List(ctx context.Context) ([]*model.Stylist, error)
		Update(ctx context.Context, s *model.Stylist) error
		Delete(ctx context.Context, id int64) error
	}

	ServiceRepository interface {
		Create(ctx context.Context, s *model.Service) error
		Get(ctx context.Context, id int64) (*model.Service, error)
		List(ctx context.Context) ([]*model.Service, error)
		Update(ctx context.Context, s *model.Service) error
		Delete(ctx context.Context, id int64) error
	}
)
