package repositories

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// PaymentRepository defines the interface for payment data operations.
// The store enforces a unique constraint on booking_id: Create of a
// second payment for the same booking fails with a CONFLICT error.
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *entities.Payment) error

	// GetByBookingID retrieves the payment attached to a booking
	GetByBookingID(ctx context.Context, bookingID string) (*entities.Payment, error)
}
