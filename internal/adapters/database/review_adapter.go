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

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanReview(row rowScanner) (*entities.Review, error) {
	review := &entities.Review{}
	var comment sql.NullString

	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.VendorID,
		&review.AuthorID,
		&review.Rating,
		&comment,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.Comment = comment.String
	return review, nil
}

// Create creates a new review. Reviews are unique per booking; the
// constraint violation maps to a conflict.
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":         review.ID,
		"booking_id": review.BookingID,
		"vendor_id":  review.VendorID,
		"author_id":  review.AuthorID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(fmt.Sprintf("review for booking %s already exists", review.BookingID))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}

	return nil
}

// GetByBookingID retrieves the review attached to a booking
func (a *ReviewAdapter) GetByBookingID(ctx context.Context, bookingID string) (*entities.Review, error) {
	query, args, err := a.db.Select(
		"id", "booking_id", "vendor_id", "author_id", "rating",
		"comment", "created_at",
	).From("reviews").
		Where(goqu.Ex{"booking_id": bookingID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review for booking %s not found", bookingID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}

	return review, nil
}

// ListByVendor retrieves a vendor's reviews, newest first
func (a *ReviewAdapter) ListByVendor(ctx context.Context, vendorID string) ([]*entities.Review, error) {
	query, args, err := a.db.Select(
		"id", "booking_id", "vendor_id", "author_id", "rating",
		"comment", "created_at",
	).From("reviews").
		Where(goqu.Ex{"vendor_id": vendorID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}
