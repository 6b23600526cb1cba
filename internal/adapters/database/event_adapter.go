package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/postgres"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// EventAdapter implements the EventRepository interface
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new event
func (a *EventAdapter) Create(ctx context.Context, event *entities.Event) error {
	record := goqu.Record{
		"id":           event.ID,
		"organizer_id": event.OrganizerID,
		"title":        event.Title,
		"date":         event.Date,
		"location":     event.Location,
		"type":         event.Type,
		"budget":       event.Budget,
		"created_at":   event.CreatedAt,
		"updated_at":   event.UpdatedAt,
	}

	query, args, err := a.db.Insert("events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create event", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (a *EventAdapter) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	query, args, err := a.db.Select(
		"id", "organizer_id", "title", "date", "location", "type",
		"budget", "created_at", "updated_at",
	).From("events").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	event := &entities.Event{}
	var location, eventType sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Date,
		&location,
		&eventType,
		&event.Budget,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}

	event.Location = location.String
	event.Type = eventType.String

	return event, nil
}

// Update updates an event
func (a *EventAdapter) Update(ctx context.Context, event *entities.Event) error {
	event.UpdatedAt = time.Now()

	record := goqu.Record{
		"title":      event.Title,
		"date":       event.Date,
		"location":   event.Location,
		"type":       event.Type,
		"budget":     event.Budget,
		"updated_at": event.UpdatedAt,
	}

	query, args, err := a.db.Update("events").
		Set(record).
		Where(goqu.Ex{"id": event.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", event.ID))
	}

	return nil
}

// Delete deletes an event
func (a *EventAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("events").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}

	return nil
}

// ListByOrganizer retrieves an organizer's events ordered by date
func (a *EventAdapter) ListByOrganizer(ctx context.Context, organizerID string) ([]*entities.Event, error) {
	query, args, err := a.db.Select(
		"id", "organizer_id", "title", "date", "location", "type",
		"budget", "created_at", "updated_at",
	).From("events").
		Where(goqu.Ex{"organizer_id": organizerID}).
		Order(goqu.I("date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	var events []*entities.Event
	for rows.Next() {
		event := &entities.Event{}
		var location, eventType sql.NullString

		err := rows.Scan(
			&event.ID,
			&event.OrganizerID,
			&event.Title,
			&event.Date,
			&location,
			&eventType,
			&event.Budget,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}

		event.Location = location.String
		event.Type = eventType.String

		events = append(events, event)
	}

	return events, nil
}
