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

// ReviewService gates review creation on the booking lifecycle: one
// review per booking, written by the owning organizer, only after the
// vendor marked the work COMPLETED.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
}

// NewReviewService creates a new review service
func NewReviewService(reviewRepo repositories.ReviewRepository, bookingRepo repositories.BookingRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
	}
}

// CreateReviewInput is the caller-supplied part of a review.
type CreateReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// CreateReview attaches a review to a completed booking. The vendor's
// stored rating is deliberately left alone; recomputation happens
// outside this service.
func (s *ReviewService) CreateReview(ctx context.Context, actor entities.Actor, bookingID string, input CreateReviewInput) (*entities.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	detail, err := s.bookingRepo.GetDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.Role != entities.RoleOrganizer || actor.ID != detail.Event.OrganizerID {
		return nil, apperrors.NewForbiddenError("only the booking's organizer may review it")
	}

	if detail.Status != entities.BookingStatusCompleted {
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("booking is %s, reviews require COMPLETED", detail.Status))
	}

	review := &entities.Review{
		ID:        uuid.New().String(),
		BookingID: detail.ID,
		VendorID:  detail.VendorID,
		AuthorID:  actor.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// ListByVendor retrieves a vendor's reviews, newest first
func (s *ReviewService) ListByVendor(ctx context.Context, vendorID string) ([]*entities.Review, error) {
	reviews, err := s.reviewRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*entities.Review{}
	}
	return reviews, nil
}
