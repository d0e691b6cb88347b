package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/salon-api/internal/repository"
)

type bookingRepository struct {
	db *sqlx.DB
}

type emailLogRepository struct {
	db *sqlx.DB
}

type customerRepository struct {
	db *sqlx.DB
}

type stylistRepository struct {
	db *sqlx.DB
}

type serviceRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewEmailLogRepository(db *sqlx.DB) repository.EmailLogRepository {
	return &emailLogRepository{db: db}
}

func NewCustomerRepository(db *sqlx.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func NewStylistRepository(db *sqlx.DB) repository.StylistRepository {
	return &stylistRepository{db: db}
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}
