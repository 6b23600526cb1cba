package providers

import (
	"context"

	"github.com/eventflow/marketplace/internal/domain/entities"
)

// SearchProvider defines the interface for the vendor catalog index.
// Callers must tolerate failure: the catalog falls back to the
// relational store when the index is unavailable.
type SearchProvider interface {
	// Index upserts a vendor profile into the index
	Index(ctx context.Context, profile *entities.VendorProfile) error

	// Delete removes a vendor profile from the index
	Delete(ctx context.Context, id string) error

	// Search searches vendor profiles by free text, category and location
	Search(ctx context.Context, params SearchParams) ([]*entities.VendorProfile, error)
}

// SearchParams defines catalog search parameters
type SearchParams struct {
	Query    string
	Category string
	Location string
	Limit    int
	Offset   int
}
