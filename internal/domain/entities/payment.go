package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment record.
type PaymentStatus string

const (
	// PaymentStatusCompleted is the only status written today: payments
	// are recorded as completed stubs, no gateway is integrated.
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// Payment is the stub payment record created exactly once when a booking
// transitions to PAID. Amount equals the booking's price snapshot.
type Payment struct {
	ID            string          `json:"id" db:"id"`
	BookingID     string          `json:"booking_id" db:"booking_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        PaymentStatus   `json:"status" db:"status"`
	Method        string          `json:"method" db:"method"`
	TransactionID string          `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
