package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/providers"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/observability"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

const catalogCacheTTL = 60 * time.Second

// CatalogService serves the public vendor catalog. Queries go to the
// search index first and fall back to the relational store when the
// index is down, so browsing keeps working through a search outage.
type CatalogService struct {
	vendorRepo  repositories.VendorRepository
	serviceRepo repositories.ServiceRepository
	reviewRepo  repositories.ReviewRepository
	search      providers.SearchProvider
	cache       providers.CacheProvider
	metrics     *observability.Metrics
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	vendorRepo repositories.VendorRepository,
	serviceRepo repositories.ServiceRepository,
	reviewRepo repositories.ReviewRepository,
	search providers.SearchProvider,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *CatalogService {
	return &CatalogService{
		vendorRepo:  vendorRepo,
		serviceRepo: serviceRepo,
		reviewRepo:  reviewRepo,
		search:      search,
		cache:       cache,
		metrics:     metrics,
	}
}

// VendorDetail is a vendor profile with its services and reviews, the
// full public view of one vendor.
type VendorDetail struct {
	entities.VendorProfile
	Services []*entities.Service `json:"services"`
	Reviews  []*entities.Review  `json:"reviews"`
}

// ListVendors searches the vendor catalog
func (s *CatalogService) ListVendors(ctx context.Context, params providers.SearchParams) ([]*entities.VendorProfile, error) {
	ctx, span := observability.StartSpan(ctx, "CatalogService.ListVendors")
	defer span.End()

	cacheKey := fmt.Sprintf("catalog:vendors:%s:%s:%s:%d:%d",
		params.Query, params.Category, params.Location, params.Limit, params.Offset)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var profiles []*entities.VendorProfile
			if err := json.Unmarshal(data, &profiles); err == nil {
				s.recordCache(ctx, cacheKey, true)
				return profiles, nil
			}
		}
		s.recordCache(ctx, cacheKey, false)
	}

	profiles, err := s.searchVendors(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(profiles); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, catalogCacheTTL); err != nil {
				observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache catalog page")
			}
		}
	}

	return profiles, nil
}

func (s *CatalogService) searchVendors(ctx context.Context, params providers.SearchParams) ([]*entities.VendorProfile, error) {
	if s.search != nil {
		profiles, err := s.search.Search(ctx, params)
		if err == nil {
			return profiles, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("search index unavailable, falling back to database")
	}

	profiles, err := s.vendorRepo.List(ctx, repositories.VendorFilter{
		Query:    params.Query,
		Category: params.Category,
		Location: params.Location,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []*entities.VendorProfile{}
	}
	return profiles, nil
}

// GetVendor retrieves one vendor's full public view
func (s *CatalogService) GetVendor(ctx context.Context, id string) (*VendorDetail, error) {
	profile, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListByVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []*entities.Service{}
	}

	reviews, err := s.reviewRepo.ListByVendor(ctx, id)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		reviews = nil
	}
	if reviews == nil {
		reviews = []*entities.Review{}
	}

	return &VendorDetail{
		VendorProfile: *profile,
		Services:      services,
		Reviews:       reviews,
	}, nil
}

func (s *CatalogService) recordCache(ctx context.Context, key string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		observability.RecordCacheHit(ctx, s.metrics, key)
	} else {
		observability.RecordCacheMiss(ctx, s.metrics, key)
	}
}
