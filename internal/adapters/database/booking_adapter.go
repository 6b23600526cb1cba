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

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// detailColumns is the select list shared by GetDetail and List. The
// scan order in scanDetail must match it.
var detailColumns = []interface{}{
	goqu.I("b.id"), goqu.I("b.event_id"), goqu.I("b.vendor_id"),
	goqu.I("b.service_id"), goqu.I("b.organizer_id"), goqu.I("b.status"),
	goqu.I("b.price"), goqu.I("b.date"), goqu.I("b.notes"),
	goqu.I("b.created_at"), goqu.I("b.updated_at"),
	goqu.I("e.title"), goqu.I("e.date"), goqu.I("e.location"),
	goqu.I("e.type"), goqu.I("e.budget"),
	goqu.I("s.name"), goqu.I("s.description"), goqu.I("s.base_price"),
	goqu.I("v.user_id"), goqu.I("v.business_name"),
}

func (a *BookingAdapter) detailDataset() *goqu.SelectDataset {
	return a.db.Select(detailColumns...).
		From(goqu.T("bookings").As("b")).
		Join(goqu.T("events").As("e"), goqu.On(goqu.Ex{"e.id": goqu.I("b.event_id")})).
		Join(goqu.T("services").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("b.service_id")})).
		Join(goqu.T("vendor_profiles").As("v"), goqu.On(goqu.Ex{"v.id": goqu.I("b.vendor_id")}))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetail(row rowScanner) (*entities.BookingDetail, error) {
	detail := &entities.BookingDetail{}
	var notes, eventLocation, eventType, serviceDescription sql.NullString

	err := row.Scan(
		&detail.ID,
		&detail.EventID,
		&detail.VendorID,
		&detail.ServiceID,
		&detail.OrganizerID,
		&detail.Status,
		&detail.Price,
		&detail.Date,
		&notes,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Event.Title,
		&detail.Event.Date,
		&eventLocation,
		&eventType,
		&detail.Event.Budget,
		&detail.Service.Name,
		&serviceDescription,
		&detail.Service.BasePrice,
		&detail.Vendor.UserID,
		&detail.Vendor.BusinessName,
	)
	if err != nil {
		return nil, err
	}

	detail.Notes = notes.String
	detail.Event.Location = eventLocation.String
	detail.Event.Type = eventType.String
	detail.Service.Description = serviceDescription.String

	detail.Event.ID = detail.EventID
	detail.Event.OrganizerID = detail.OrganizerID
	detail.Service.ID = detail.ServiceID
	detail.Service.VendorID = detail.VendorID
	detail.Vendor.ID = detail.VendorID

	return detail, nil
}

// Create creates a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":           booking.ID,
		"event_id":     booking.EventID,
		"vendor_id":    booking.VendorID,
		"service_id":   booking.ServiceID,
		"organizer_id": booking.OrganizerID,
		"status":       booking.Status,
		"price":        booking.Price,
		"date":         booking.Date,
		"notes":        booking.Notes,
		"created_at":   booking.CreatedAt,
		"updated_at":   booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetDetail retrieves a booking by ID with its nested references
func (a *BookingAdapter) GetDetail(ctx context.Context, id string) (*entities.BookingDetail, error) {
	query, args, err := a.detailDataset().
		Where(goqu.Ex{"b.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	detail, err := scanDetail(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return detail, nil
}

// UpdateStatus conditionally moves a booking from one status to another.
// The UPDATE matches on both id and the expected current status, so a
// concurrent writer that got there first leaves nothing to update; the
// follow-up read distinguishes a missing booking from a lost race.
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":     to,
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": id, "status": from}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	selectQuery, selectArgs, err := a.db.Select("status").
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build status query", err)
	}

	var current entities.BookingStatus
	err = a.client.DB().QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&current)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to read booking status", err)
	}

	return apperrors.NewConflictError(fmt.Sprintf("booking status changed concurrently, now %s", current))
}

// List retrieves bookings with nested references matching the filter
func (a *BookingAdapter) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.BookingDetail, error) {
	ds := a.detailDataset()

	if filter.OrganizerID != "" {
		ds = ds.Where(goqu.Ex{"b.organizer_id": filter.OrganizerID})
	}
	if filter.VendorID != "" {
		ds = ds.Where(goqu.Ex{"b.vendor_id": filter.VendorID})
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"b.status": filter.Status})
	}

	ds = ds.Order(goqu.I("b.created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var details []*entities.BookingDetail
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		details = append(details, detail)
	}

	return details, nil
}
