package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventflow/marketplace/internal/domain/authz"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/providers"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/observability"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// BookingService drives the booking lifecycle: creation, role-gated
// status transitions, the payment step and lifecycle notifications.
type BookingService struct {
	bookingRepo repositories.BookingRepository
	eventRepo   repositories.EventRepository
	serviceRepo repositories.ServiceRepository
	vendorRepo  repositories.VendorRepository
	paymentSvc  *PaymentService
	bus         providers.EventBus
	metrics     *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repositories.BookingRepository,
	eventRepo repositories.EventRepository,
	serviceRepo repositories.ServiceRepository,
	vendorRepo repositories.VendorRepository,
	paymentSvc *PaymentService,
	bus providers.EventBus,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		serviceRepo: serviceRepo,
		vendorRepo:  vendorRepo,
		paymentSvc:  paymentSvc,
		bus:         bus,
		metrics:     metrics,
	}
}

// CreateBookingInput is the caller-supplied part of a new booking.
type CreateBookingInput struct {
	EventID   string    `json:"event_id"`
	ServiceID string    `json:"service_id"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

// CreateBooking creates a PENDING booking for one of the actor's events.
// The price is snapshotted from the service's base price at this moment
// and never changes afterwards, whatever the vendor later does to the
// service.
func (s *BookingService) CreateBooking(ctx context.Context, actor entities.Actor, input CreateBookingInput) (*entities.BookingDetail, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.CreateBooking")
	defer span.End()

	if input.EventID == "" || input.ServiceID == "" {
		return nil, apperrors.NewValidationError("event_id and service_id are required")
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.OpCreateBooking, authz.Ownership{EventOwnerID: event.OrganizerID}); err != nil {
		return nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = event.Date
	}

	now := time.Now()
	booking := &entities.Booking{
		ID:          uuid.New().String(),
		EventID:     event.ID,
		VendorID:    service.VendorID,
		ServiceID:   service.ID,
		OrganizerID: actor.ID,
		Status:      entities.BookingStatusPending,
		Price:       service.BasePrice,
		Date:        date,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.publish(ctx, &entities.BookingEvent{
		ID:          uuid.New().String(),
		Type:        entities.BookingEventCreated,
		BookingID:   booking.ID,
		EventID:     booking.EventID,
		VendorID:    booking.VendorID,
		OrganizerID: booking.OrganizerID,
		ToStatus:    booking.Status,
		OccurredAt:  now,
	})

	return s.bookingRepo.GetDetail(ctx, booking.ID)
}

// GetBooking retrieves a booking the actor is allowed to see
func (s *BookingService) GetBooking(ctx context.Context, actor entities.Actor, id string) (*entities.BookingDetail, error) {
	detail, err := s.bookingRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOnDetail(actor, authz.OpReadBooking, detail); err != nil {
		return nil, err
	}

	return detail, nil
}

// ListBookings lists bookings scoped to the actor: organizers see their
// own, vendors see their profile's, admins see everything.
func (s *BookingService) ListBookings(ctx context.Context, actor entities.Actor, status entities.BookingStatus, limit, offset int) ([]*entities.BookingDetail, error) {
	if status != "" && !entities.ValidBookingStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown booking status %q", status))
	}

	filter := repositories.BookingFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	}

	switch actor.Role {
	case entities.RoleAdmin:
	case entities.RoleOrganizer:
		filter.OrganizerID = actor.ID
	case entities.RoleVendor:
		profile, err := s.vendorRepo.GetByUserID(ctx, actor.ID)
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
				return []*entities.BookingDetail{}, nil
			}
			return nil, err
		}
		filter.VendorID = profile.ID
	default:
		return nil, apperrors.NewForbiddenError("unknown actor role")
	}

	details, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []*entities.BookingDetail{}
	}
	return details, nil
}

// UpdateStatus moves a booking along the lifecycle. The current status
// is read first for the permission checks, then the write is made
// conditional on that same status so a concurrent transition loses
// cleanly rather than overwriting. A transition to PAID records the
// stub payment as part of the same request.
func (s *BookingService) UpdateStatus(ctx context.Context, actor entities.Actor, id string, to entities.BookingStatus) (*entities.BookingDetail, error) {
	ctx, span := observability.StartSpan(ctx, "BookingService.UpdateStatus")
	defer span.End()

	if !entities.ValidBookingStatus(to) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown booking status %q", to))
	}

	detail, err := s.bookingRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOnDetail(actor, authz.OpUpdateBooking, detail); err != nil {
		return nil, err
	}

	from := detail.Status
	if !entities.CanTransition(from, to, actor.Role) {
		s.recordTransition(ctx, from, to, false)
		return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot move booking from %s to %s", from, to))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, from, to); err != nil {
		observability.RecordError(span, err)
		s.recordTransition(ctx, from, to, false)
		return nil, err
	}
	s.recordTransition(ctx, from, to, true)

	now := time.Now()
	if to == entities.BookingStatusPaid {
		if _, err := s.paymentSvc.RecordStubPayment(ctx, &detail.Booking); err != nil {
			// The transition already happened; a conflict here means a
			// simultaneous caller recorded the payment first.
			if !apperrors.IsType(err, apperrors.ErrorTypeConflict) {
				observability.RecordError(span, err)
				return nil, err
			}
		} else {
			s.publish(ctx, &entities.BookingEvent{
				ID:          uuid.New().String(),
				Type:        entities.BookingEventPaymentStub,
				BookingID:   detail.ID,
				EventID:     detail.EventID,
				VendorID:    detail.VendorID,
				OrganizerID: detail.OrganizerID,
				ToStatus:    to,
				OccurredAt:  now,
			})
		}
	}

	s.publish(ctx, &entities.BookingEvent{
		ID:          uuid.New().String(),
		Type:        entities.BookingEventTransition,
		BookingID:   detail.ID,
		EventID:     detail.EventID,
		VendorID:    detail.VendorID,
		OrganizerID: detail.OrganizerID,
		FromStatus:  from,
		ToStatus:    to,
		OccurredAt:  now,
	})

	return s.bookingRepo.GetDetail(ctx, id)
}

func (s *BookingService) authorizeOnDetail(actor entities.Actor, op authz.Operation, detail *entities.BookingDetail) error {
	return authz.Authorize(actor, op, authz.Ownership{
		EventOwnerID:  detail.Event.OrganizerID,
		VendorOwnerID: detail.Vendor.UserID,
	})
}

// publish fans a lifecycle event out to the firehose plus the booking
// and vendor channels. Publishing is best effort; a broker outage must
// not fail the request that already committed.
func (s *BookingService) publish(ctx context.Context, event *entities.BookingEvent) {
	if s.bus == nil {
		return
	}

	logger := observability.LoggerFromContext(ctx)
	channels := []string{
		providers.EventChannelBookingUpdates,
		providers.GetBookingChannel(event.BookingID),
		providers.GetVendorChannel(event.VendorID),
	}
	for _, channel := range channels {
		if err := s.bus.Publish(ctx, channel, event); err != nil {
			logger.Warn().Err(err).Str("channel", channel).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
		}
	}
}

func (s *BookingService) recordTransition(ctx context.Context, from, to entities.BookingStatus, ok bool) {
	if s.metrics == nil {
		return
	}
	observability.RecordTransition(ctx, s.metrics, string(from), string(to), ok)
}
