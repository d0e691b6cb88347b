package model

import "time"

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "Pending"
	BookingStatusConfirmed   BookingStatus = "Confirmed"
	BookingStatusRescheduled BookingStatus = "Rescheduled"
	BookingStatusCancelled   BookingStatus = "Cancelled"
	BookingStatusCompleted   BookingStatus = "Completed"
)

// Booking is a single appointment of a customer with a stylist for a service.
type Booking struct {
	ID                 int64         `db:"id" json:"id"`
	DateTime           time.Time     `db:"date_time" json:"dateTime"`
	CustomerID         int64         `db:"customer_id" json:"customerId"`
	StylistID          int64         `db:"stylist_id" json:"stylistId"`
	ServiceID          int64         `db:"service_id" json:"serviceId"`
	Status             BookingStatus `db:"status" json:"status"`
	Notes              string        `db:"notes" json:"notes"`
	CancellationReason string        `db:"cancellation_reason" json:"cancellationReason"`
	CreatedDate        time.Time     `db:"created_date" json:"createdDate"`
	LastModifiedDate   time.Time     `db:"last_modified_date" json:"lastModifiedDate"`
	// Version is the optimistic concurrency token, bumped on every save.
	Version int64 `db:"version" json:"-"`
}

// BookingDetails is the booking view returned to clients, with names resolved.
type BookingDetails struct {
	Booking
	CustomerName string `db:"customer_name" json:"customerName"`
	StylistName  string `db:"stylist_name" json:"stylistName"`
	ServiceName  string `db:"service_name" json:"serviceName"`
}

type BookingRequest struct {
	DateTime   time.Time `json:"dateTime" binding:"required"`
	CustomerID int64     `json:"customerId" binding:"required,gt=0"`
	StylistID  int64     `json:"stylistId" binding:"required,gt=0"`
	ServiceID  int64     `json:"serviceId" binding:"required,gt=0"`
	Notes      *string   `json:"notes" binding:"omitempty,max=1000"`
}

type RescheduleBookingRequest struct {
	NewDateTime time.Time `json:"newDateTime" binding:"required"`
	Reason      *string   `json:"reason" binding:"omitempty,max=1000"`
}

// CancelBookingRequest requires the reason key to be present; an empty reason is accepted.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason" binding:"required,max=1000"`
}
