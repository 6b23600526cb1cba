package repositories

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// VendorRepository defines the interface for vendor profile data
// operations
type VendorRepository interface {
	// Create creates a new vendor profile
	Create(ctx context.Context, profile *entities.VendorProfile) error

	// GetByID retrieves a vendor profile by ID
	GetByID(ctx context.Context, id string) (*entities.VendorProfile, error)

	// GetByUserID retrieves the profile owned by a vendor user
	GetByUserID(ctx context.Context, userID string) (*entities.VendorProfile, error)

	// Update updates a vendor profile
	Update(ctx context.Context, profile *entities.VendorProfile) error

	// List retrieves vendor profiles matching the filter. This is the
	// relational fallback behind the search index.
	List(ctx context.Context, filter VendorFilter) ([]*entities.VendorProfile, error)
}

// VendorFilter defines catalog filters for listing vendors. Text fields
// are matched as case-insensitive substrings.
type VendorFilter struct {
	Query    string
	Category string
	Location string
	Limit    int
	Offset   int
}

// ServiceRepository defines the interface for service data operations
type ServiceRepository interface {
	// Create creates a new service
	Create(ctx context.Context, service *entities.Service) error

	// GetByID retrieves a service by ID
	GetByID(ctx context.Context, id string) (*entities.Service, error)

	// Update updates a service
	Update(ctx context.Context, service *entities.Service) error

	// Delete deletes a service
	Delete(ctx context.Context, id string) error

	// ListByVendor retrieves a vendor's services
	ListByVendor(ctx context.Context, vendorID string) ([]*entities.Service, error)
}
