package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/postgres"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// PaymentAdapter implements the PaymentRepository interface
type PaymentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPaymentAdapter creates a new payment adapter
func NewPaymentAdapter(client *postgres.Client) repositories.PaymentRepository {
	return &PaymentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new payment record. The payments table carries a
// unique constraint on booking_id, so the database is the final word on
// double payment even when two writers pass the pre-check at once.
func (a *PaymentAdapter) Create(ctx context.Context, payment *entities.Payment) error {
	record := goqu.Record{
		"id":             payment.ID,
		"booking_id":     payment.BookingID,
		"amount":         payment.Amount,
		"status":         payment.Status,
		"method":         payment.Method,
		"transaction_id": payment.TransactionID,
		"created_at":     payment.CreatedAt,
	}

	query, args, err := a.db.Insert("payments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(fmt.Sprintf("payment for booking %s already exists", payment.BookingID))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to create payment", err)
	}

	return nil
}

// GetByBookingID retrieves the payment attached to a booking
func (a *PaymentAdapter) GetByBookingID(ctx context.Context, bookingID string) (*entities.Payment, error) {
	query, args, err := a.db.Select(
		"id", "booking_id", "amount", "status", "method",
		"transaction_id", "created_at",
	).From("payments").
		Where(goqu.Ex{"booking_id": bookingID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	payment := &entities.Payment{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.Method,
		&payment.TransactionID,
		&payment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment for booking %s not found", bookingID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get payment", err)
	}

	return payment, nil
}
