package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/clients/postgres"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

// VendorAdapter implements the VendorRepository interface
type VendorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVendorAdapter creates a new vendor adapter
func NewVendorAdapter(client *postgres.Client) repositories.VendorRepository {
	return &VendorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var vendorColumns = []interface{}{
	"id", "user_id", "business_name", "description", "category",
	"location", "rating", "created_at", "updated_at",
}

func scanVendorProfile(row rowScanner) (*entities.VendorProfile, error) {
	profile := &entities.VendorProfile{}
	var description, category, location sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BusinessName,
		&description,
		&category,
		&location,
		&profile.Rating,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.Description = description.String
	profile.Category = category.String
	profile.Location = location.String

	return profile, nil
}

// Create creates a new vendor profile. Profiles are 1:1 with vendor
// users; a second profile for the same user is a conflict.
func (a *VendorAdapter) Create(ctx context.Context, profile *entities.VendorProfile) error {
	record := goqu.Record{
		"id":            profile.ID,
		"user_id":       profile.UserID,
		"business_name": profile.BusinessName,
		"description":   profile.Description,
		"category":      profile.Category,
		"location":      profile.Location,
		"rating":        profile.Rating,
		"created_at":    profile.CreatedAt,
		"updated_at":    profile.UpdatedAt,
	}

	query, args, err := a.db.Insert("vendor_profiles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(fmt.Sprintf("vendor profile for user %s already exists", profile.UserID))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to create vendor profile", err)
	}

	return nil
}

// GetByID retrieves a vendor profile by ID
func (a *VendorAdapter) GetByID(ctx context.Context, id string) (*entities.VendorProfile, error) {
	query, args, err := a.db.Select(vendorColumns...).
		From("vendor_profiles").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile, err := scanVendorProfile(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vendor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get vendor profile", err)
	}

	return profile, nil
}

// GetByUserID retrieves the profile owned by a vendor user
func (a *VendorAdapter) GetByUserID(ctx context.Context, userID string) (*entities.VendorProfile, error) {
	query, args, err := a.db.Select(vendorColumns...).
		From("vendor_profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile, err := scanVendorProfile(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vendor profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get vendor profile", err)
	}

	return profile, nil
}

// Update updates a vendor profile. The rating column is not written
// here; it is maintained separately from profile edits.
func (a *VendorAdapter) Update(ctx context.Context, profile *entities.VendorProfile) error {
	profile.UpdatedAt = time.Now()

	record := goqu.Record{
		"business_name": profile.BusinessName,
		"description":   profile.Description,
		"category":      profile.Category,
		"location":      profile.Location,
		"updated_at":    profile.UpdatedAt,
	}

	query, args, err := a.db.Update("vendor_profiles").
		Set(record).
		Where(goqu.Ex{"id": profile.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update vendor profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("vendor with id %s not found", profile.ID))
	}

	return nil
}

// List retrieves vendor profiles matching the filter
func (a *VendorAdapter) List(ctx context.Context, filter repositories.VendorFilter) ([]*entities.VendorProfile, error) {
	ds := a.db.Select(vendorColumns...).From("vendor_profiles")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("business_name").ILike(pattern),
			goqu.C("description").ILike(pattern),
		))
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.C("category").ILike(filter.Category))
	}
	if filter.Location != "" {
		ds = ds.Where(goqu.C("location").ILike("%" + filter.Location + "%"))
	}

	ds = ds.Order(goqu.I("rating").Desc(), goqu.I("business_name").Asc())

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
		return nil, apperrors.NewInternalError("failed to list vendor profiles", err)
	}
	defer rows.Close()

	var profiles []*entities.VendorProfile
	for rows.Next() {
		profile, err := scanVendorProfile(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan vendor profile", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}
