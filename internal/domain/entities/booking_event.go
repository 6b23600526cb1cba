package entities

import "time"

// BookingEventType identifies what happened to a booking.
type BookingEventType string

const (
	BookingEventCreated     BookingEventType = "booking.created"
	BookingEventTransition  BookingEventType = "booking.transitioned"
	BookingEventPaymentStub BookingEventType = "booking.payment_recorded"
)

// BookingEvent is the notification payload published on the event bus
// after a booking changes. Delivery to end users is handled outside this
// service; subscribers only receive the facts.
type BookingEvent struct {
	ID          string           `json:"id"`
	Type        BookingEventType `json:"type"`
	BookingID   string           `json:"booking_id"`
	EventID     string           `json:"event_id"`
	VendorID    string           `json:"vendor_id"`
	OrganizerID string           `json:"organizer_id"`
	FromStatus  BookingStatus    `json:"from_status,omitempty"`
	ToStatus    BookingStatus    `json:"to_status"`
	OccurredAt  time.Time        `json:"occurred_at"`
}
