package repositories

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations.
// Bookings are never deleted; after creation the status field is only
// written through UpdateStatus.
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetDetail retrieves a booking by ID with its nested event, service
	// and vendor references
	GetDetail(ctx context.Context, id string) (*entities.BookingDetail, error)

	// UpdateStatus conditionally moves a booking from one status to
	// another. The write succeeds only when the stored status still
	// equals from; a lost race is reported as a CONFLICT error and a
	// missing row as NOT_FOUND.
	UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) error

	// List retrieves bookings with nested references matching the filter,
	// newest first
	List(ctx context.Context, filter BookingFilter) ([]*entities.BookingDetail, error)
}

// BookingFilter defines filters for listing bookings. Empty fields are
// not applied.
type BookingFilter struct {
	OrganizerID string
	VendorID    string
	Status      entities.BookingStatus
	Limit       int
	Offset      int
}
