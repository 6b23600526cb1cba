package repositories

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations.
// Reviews are write-once; the store enforces a unique constraint on
// booking_id.
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByBookingID retrieves the review attached to a booking
	GetByBookingID(ctx context.Context, bookingID string) (*entities.Review, error)

	// ListByVendor retrieves a vendor's reviews, newest first
	ListByVendor(ctx context.Context, vendorID string) ([]*entities.Review, error)
}
