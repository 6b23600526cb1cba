package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// paymentMethodStub marks records written by the stub recorder. No
// gateway is integrated; the record is the receipt.
const paymentMethodStub = "card_stub"

// PaymentService records stub payments against bookings
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repositories.PaymentRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// RecordStubPayment writes the payment record for a booking entering
// PAID. The amount is the booking's price snapshot. At most one payment
// exists per booking: a replayed call returns the already recorded
// payment, and two simultaneous callers are split by the unique
// constraint, with the loser getting a CONFLICT error.
func (s *PaymentService) RecordStubPayment(ctx context.Context, booking *entities.Booking) (*entities.Payment, error) {
	existing, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	now := time.Now()
	payment := &entities.Payment{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		Amount:        booking.Price,
		Status:        entities.PaymentStatusCompleted,
		Method:        paymentMethodStub,
		TransactionID: fmt.Sprintf("stub_%d", now.UnixMilli()),
		CreatedAt:     now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// GetByBooking retrieves the payment attached to a booking
func (s *PaymentService) GetByBooking(ctx context.Context, bookingID string) (*entities.Payment, error) {
	return s.paymentRepo.GetByBookingID(ctx, bookingID)
}
