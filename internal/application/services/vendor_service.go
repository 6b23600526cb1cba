package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eventflow/marketplace/internal/domain/authz"
	"github.com/eventflow/marketplace/internal/domain/entities"
	"github.com/eventflow/marketplace/internal/domain/providers"
	"github.com/eventflow/marketplace/internal/domain/repositories"
	"github.com/eventflow/marketplace/internal/infrastructure/observability"
	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// VendorService manages vendor profiles and their services. Profile
// writes are mirrored into the search index on a best effort basis; the
// relational store stays the source of truth.
type VendorService struct {
	vendorRepo  repositories.VendorRepository
	serviceRepo repositories.ServiceRepository
	search      providers.SearchProvider
}

// NewVendorService creates a new vendor service
func NewVendorService(
	vendorRepo repositories.VendorRepository,
	serviceRepo repositories.ServiceRepository,
	search providers.SearchProvider,
) *VendorService {
	return &VendorService{
		vendorRepo:  vendorRepo,
		serviceRepo: serviceRepo,
		search:      search,
	}
}

// ProfileInput is the caller-supplied part of a vendor profile.
type ProfileInput struct {
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Location     string `json:"location"`
}

// ServiceInput is the caller-supplied part of a bookable service.
type ServiceInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// GetMyProfile retrieves the acting vendor's profile
func (s *VendorService) GetMyProfile(ctx context.Context, actor entities.Actor) (*entities.VendorProfile, error) {
	if actor.Role != entities.RoleVendor {
		return nil, apperrors.NewForbiddenError("only vendors have a vendor profile")
	}
	return s.vendorRepo.GetByUserID(ctx, actor.ID)
}

// UpsertMyProfile creates the acting vendor's profile on first write
// and updates it afterwards
func (s *VendorService) UpsertMyProfile(ctx context.Context, actor entities.Actor, input ProfileInput) (*entities.VendorProfile, error) {
	if actor.Role != entities.RoleVendor {
		return nil, apperrors.NewForbiddenError("only vendors have a vendor profile")
	}
	if input.BusinessName == "" {
		return nil, apperrors.NewValidationError("business_name is required")
	}

	profile, err := s.vendorRepo.GetByUserID(ctx, actor.ID)
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		now := time.Now()
		profile = &entities.VendorProfile{
			ID:           uuid.New().String(),
			UserID:       actor.ID,
			BusinessName: input.BusinessName,
			Description:  input.Description,
			Category:     input.Category,
			Location:     input.Location,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.vendorRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		s.index(ctx, profile)
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.BusinessName = input.BusinessName
	profile.Description = input.Description
	profile.Category = input.Category
	profile.Location = input.Location

	if err := s.vendorRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.index(ctx, profile)

	return profile, nil
}

// CreateService adds a bookable service to the acting vendor's profile
func (s *VendorService) CreateService(ctx context.Context, actor entities.Actor, input ServiceInput) (*entities.Service, error) {
	profile, err := s.GetMyProfile(ctx, actor)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, apperrors.NewValidationError("base_price must not be negative")
	}

	now := time.Now()
	service := &entities.Service{
		ID:          uuid.New().String(),
		VendorID:    profile.ID,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// UpdateService updates one of the acting vendor's services. Foreign
// services read as missing.
func (s *VendorService) UpdateService(ctx context.Context, actor entities.Actor, id string, input ServiceInput) (*entities.Service, error) {
	service, err := s.getOwnedService(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if input.BasePrice.IsNegative() {
		return nil, apperrors.NewValidationError("base_price must not be negative")
	}

	service.Name = input.Name
	service.Description = input.Description
	service.BasePrice = input.BasePrice

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// DeleteService deletes one of the acting vendor's services, with the
// same missing read for foreign services
func (s *VendorService) DeleteService(ctx context.Context, actor entities.Actor, id string) error {
	if _, err := s.getOwnedService(ctx, actor, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

// ListMyServices lists the acting vendor's services
func (s *VendorService) ListMyServices(ctx context.Context, actor entities.Actor) ([]*entities.Service, error) {
	profile, err := s.GetMyProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.ListByVendor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []*entities.Service{}
	}
	return services, nil
}

func (s *VendorService) getOwnedService(ctx context.Context, actor entities.Actor, id string) (*entities.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.vendorRepo.GetByID(ctx, service.VendorID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.OpManageVendor, authz.Ownership{VendorOwnerID: profile.UserID}); err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %s not found", id))
	}

	return service, nil
}

func (s *VendorService) index(ctx context.Context, profile *entities.VendorProfile) {
	if s.search == nil {
		return
	}
	if err := s.search.Index(ctx, profile); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("vendor_id", profile.ID).Msg("failed to index vendor profile")
	}
}
