package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventflow/marketplace/internal/domain/authz"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// EventService manages organizer events
type EventService struct {
	eventRepo repositories.EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// EventInput is the caller-supplied part of an event.
type EventInput struct {
	Title    string          `json:"title"`
	Date     time.Time       `json:"date"`
	Location string          `json:"location"`
	Type     string          `json:"type"`
	Budget   decimal.Decimal `json:"budget"`
}

func (in EventInput) validate() error {
	if in.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	if in.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	return nil
}

// CreateEvent creates an event owned by the acting organizer
func (s *EventService) CreateEvent(ctx context.Context, actor entities.Actor, input EventInput) (*entities.Event, error) {
	if actor.Role != entities.RoleOrganizer {
		return nil, apperrors.NewForbiddenError("only organizers may create events")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &entities.Event{
		ID:          uuid.New().String(),
		OrganizerID: actor.ID,
		Title:       input.Title,
		Date:        input.Date,
		Location:    input.Location,
		Type:        input.Type,
		Budget:      input.Budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// UpdateEvent updates one of the actor's events. An event owned by
// someone else reads as missing, so callers cannot probe for foreign
// event IDs.
func (s *EventService) UpdateEvent(ctx context.Context, actor entities.Actor, id string, input EventInput) (*entities.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.OpManageEvent, authz.Ownership{EventOwnerID: event.OrganizerID}); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.Date = input.Date
	event.Location = input.Location
	event.Type = input.Type
	event.Budget = input.Budget

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent deletes one of the actor's events, with the same missing
// read for foreign events as UpdateEvent.
func (s *EventService) DeleteEvent(ctx context.Context, actor entities.Actor, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, authz.OpManageEvent, authz.Ownership{EventOwnerID: event.OrganizerID}); err != nil {
		return apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}

	return s.eventRepo.Delete(ctx, id)
}

// ListEvents lists the actor's events
func (s *EventService) ListEvents(ctx context.Context, actor entities.Actor) ([]*entities.Event, error) {
	events, err := s.eventRepo.ListByOrganizer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*entities.Event{}
	}
	return events, nil
}
