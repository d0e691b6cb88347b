package model

import "time"

type EmailNotificationType string

const (
	NotificationAppointmentCreated     EmailNotificationType = "AppointmentCreated"
	NotificationAppointmentRescheduled EmailNotificationType = "AppointmentRescheduled"
	NotificationAppointmentDeleted     EmailNotificationType = "AppointmentDeleted"
	NotificationAppointmentCompleted   EmailNotificationType = "AppointmentCompleted"
)

type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailLog records one attempted notification for a booking.
type EmailLog struct {
	ID               int64                 `db:"id" json:"id"`
	BookingID        int64                 `db:"booking_id" json:"bookingId"`
	NotificationType EmailNotificationType `db:"notification_type" json:"notificationType"`
	Recipient        string                `db:"recipient" json:"recipient"`
	Subject          string                `db:"subject" json:"subject"`
	Message          string                `db:"message" json:"message"`
	Status           EmailStatus           `db:"status" json:"status"`
	Error            string                `db:"error" json:"error,omitempty"`
	SentDate         time.Time             `db:"sent_date" json:"sentDate"`
}
