package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/marketplace/internal/application/services"
	"github.com/eventflow/marketplace/internal/domain/entities"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

func TestPaymentService_RecordStubPayment(t *testing.T) {
	booking := &entities.Booking{
		ID:     "b1",
		Price:  decimal.NewFromInt(2500),
		Status: entities.BookingStatusPaid,
	}

	t.Run("records a completed stub for the booking's price", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := services.NewPaymentService(paymentRepo)

		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(nil, apperrors.NewNotFoundError("payment for booking b1 not found"))
		paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Payment) bool {
			return p.BookingID == "b1" &&
				p.Amount.Equal(decimal.NewFromInt(2500)) &&
				p.Status == entities.PaymentStatusCompleted &&
				p.Method == "card_stub" &&
				strings.HasPrefix(p.TransactionID, "stub_")
		})).Return(nil)

		payment, err := service.RecordStubPayment(context.Background(), booking)

		require.NoError(t, err)
		assert.Equal(t, "b1", payment.BookingID)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("returns the existing payment instead of writing twice", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := services.NewPaymentService(paymentRepo)

		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(&entities.Payment{
			ID:        "p1",
			BookingID: "b1",
			Amount:    decimal.NewFromInt(2500),
			Status:    entities.PaymentStatusCompleted,
		}, nil)

		payment, err := service.RecordStubPayment(context.Background(), booking)

		require.NoError(t, err)
		assert.Equal(t, "p1", payment.ID)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces the conflict when another writer wins the race", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		service := services.NewPaymentService(paymentRepo)

		paymentRepo.On("GetByBookingID", mock.Anything, "b1").Return(nil, apperrors.NewNotFoundError("payment for booking b1 not found"))
		paymentRepo.On("Create", mock.Anything, mock.Anything).Return(apperrors.NewConflictError("payment for booking b1 already exists"))

		_, err := service.RecordStubPayment(context.Background(), booking)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}
