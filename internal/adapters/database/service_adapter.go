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

// ServiceAdapter implements the ServiceRepository interface
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanService(row rowScanner) (*entities.Service, error) {
	service := &entities.Service{}
	var description sql.NullString

	err := row.Scan(
		&service.ID,
		&service.VendorID,
		&service.Name,
		&description,
		&service.BasePrice,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Description = description.String
	return service, nil
}

// Create creates a new service
func (a *ServiceAdapter) Create(ctx context.Context, service *entities.Service) error {
	record := goqu.Record{
		"id":          service.ID,
		"vendor_id":   service.VendorID,
		"name":        service.Name,
		"description": service.Description,
		"base_price":  service.BasePrice,
		"created_at":  service.CreatedAt,
		"updated_at":  service.UpdatedAt,
	}

	query, args, err := a.db.Insert("services").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create service", err)
	}

	return nil
}

// GetByID retrieves a service by ID
func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	query, args, err := a.db.Select(
		"id", "vendor_id", "name", "description", "base_price",
		"created_at", "updated_at",
	).From("services").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	service, err := scanService(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get service", err)
	}

	return service, nil
}

// Update updates a service
func (a *ServiceAdapter) Update(ctx context.Context, service *entities.Service) error {
	service.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":        service.Name,
		"description": service.Description,
		"base_price":  service.BasePrice,
		"updated_at":  service.UpdatedAt,
	}

	query, args, err := a.db.Update("services").
		Set(record).
		Where(goqu.Ex{"id": service.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update service", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", service.ID))
	}

	return nil
}

// Delete deletes a service
func (a *ServiceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("services").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete service", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}

	return nil
}

// ListByVendor retrieves a vendor's services
func (a *ServiceAdapter) ListByVendor(ctx context.Context, vendorID string) ([]*entities.Service, error) {
	query, args, err := a.db.Select(
		"id", "vendor_id", "name", "description", "base_price",
		"created_at", "updated_at",
	).From("services").
		Where(goqu.Ex{"vendor_id": vendorID}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	var services []*entities.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, service)
	}

	return services, nil
}
