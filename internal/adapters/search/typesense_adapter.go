package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/providers"
	tsclient "github.com/eventflow/marketplace/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements the vendor catalog index using Typesense.
// All index calls run through a circuit breaker so a flapping search
// node degrades to the relational fallback instead of stalling requests.
type TypesenseAdapter struct {
	client  *tsclient.Client
	breaker *gobreaker.CircuitBreaker
}

var _ providers.SearchProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "typesense",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
	})

	return &TypesenseAdapter{client: client, breaker: breaker}
}

// InitSchema ensures the vendors collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.VendorsCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: tsclient.VendorsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "user_id", Type: "string"},
			{Name: "business_name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "location", Type: "string", Facet: pointer.True()},
			{Name: "rating", Type: "float"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("rating"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a vendor profile into the index
func (a *TypesenseAdapter) Index(ctx context.Context, profile *entities.VendorProfile) error {
	document := map[string]interface{}{
		"id":            profile.ID,
		"user_id":       profile.UserID,
		"business_name": profile.BusinessName,
		"description":   profile.Description,
		"category":      profile.Category,
		"location":      profile.Location,
		"rating":        profile.Rating,
		"created_at":    profile.CreatedAt.Unix(),
	}

	_, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.VendorsCollection).Documents().Upsert(ctx, document)
	})
	if err != nil {
		return fmt.Errorf("failed to index vendor: %w", err)
	}

	return nil
}

// Delete removes a vendor profile from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.VendorsCollection).Document(id).Delete(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to delete vendor from index: %w", err)
	}
	return nil
}

// Search searches vendor profiles by free text, category and location
func (a *TypesenseAdapter) Search(ctx context.Context, params providers.SearchParams) ([]*entities.VendorProfile, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var filters []string
	if params.Category != "" {
		filters = append(filters, fmt.Sprintf("category:=%s", params.Category))
	}
	if params.Location != "" {
		filters = append(filters, fmt.Sprintf("location:=%s", params.Location))
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("business_name,description"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
	}
	if len(filters) > 0 {
		searchParams.FilterBy = pointer.String(strings.Join(filters, " && "))
	}

	result, err := a.breaker.Execute(func() (interface{}, error) {
		return a.client.Client().Collection(tsclient.VendorsCollection).Documents().Search(ctx, searchParams)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search vendors: %w", err)
	}

	searchResult := result.(*api.SearchResult)
	profiles := []*entities.VendorProfile{}
	if searchResult.Hits == nil {
		return profiles, nil
	}

	for _, hit := range *searchResult.Hits {
		if hit.Document == nil {
			continue
		}
		if profile, ok := vendorFromDocument(*hit.Document); ok {
			profiles = append(profiles, profile)
		}
	}

	return profiles, nil
}

// vendorFromDocument maps an index document back onto a profile. A
// document missing any identity field is reported unusable instead of
// panicking the request; the index is not the source of truth.
func vendorFromDocument(doc map[string]interface{}) (*entities.VendorProfile, bool) {
	id, ok := doc["id"].(string)
	if !ok {
		return nil, false
	}
	userID, ok := doc["user_id"].(string)
	if !ok {
		return nil, false
	}
	businessName, ok := doc["business_name"].(string)
	if !ok {
		return nil, false
	}

	profile := &entities.VendorProfile{
		ID:           id,
		UserID:       userID,
		BusinessName: businessName,
	}
	if val, ok := doc["description"].(string); ok {
		profile.Description = val
	}
	if val, ok := doc["category"].(string); ok {
		profile.Category = val
	}
	if val, ok := doc["location"].(string); ok {
		profile.Location = val
	}
	if val, ok := doc["rating"].(float64); ok {
		profile.Rating = val
	}
	if val, ok := doc["created_at"].(float64); ok {
		profile.CreatedAt = time.Unix(int64(val), 0)
	}

	return profile, true
}
