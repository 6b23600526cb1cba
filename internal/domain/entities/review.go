package entities

import "time"

// Review is attached to exactly one completed booking by the organizer
// who owns the booking's event. It never affects the vendor's stored
// rating here; rating recomputation lives outside the lifecycle engine.
type Review struct {
	ID        string    `json:"id" db:"id"`
	BookingID string    `json:"booking_id" db:"booking_id"`
	VendorID  string    `json:"vendor_id" db:"vendor_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Rating    int       `json:"rating" db:"rating"` // 1-5
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
