package repositories

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *entities.Event) error

	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*entities.Event, error)

	// Update updates an event
	Update(ctx context.Context, event *entities.Event) error

	// Delete deletes an event
	Delete(ctx context.Context, id string) error

	// ListByOrganizer retrieves an organizer's events ordered by date
	ListByOrganizer(ctx context.Context, organizerID string) ([]*entities.Event, error)
}
