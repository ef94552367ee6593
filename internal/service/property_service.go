package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/money"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

// PropertyInput carries the editable fields of a property
type PropertyInput struct {
	Name       string
	Address    models.Address
	RentAmount float64
	Utilities  []models.UtilityCharge
}

func (in PropertyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidInput("name is required")
	}
	if !money.Valid(in.RentAmount) {
		return invalidInput("rent_amount must be a non-negative number")
	}
	for _, u := range in.Utilities {
		if err := u.Validate(); err != nil {
			return invalidInput("%v", err)
		}
	}
	return nil
}

// PropertyService interface defines property management methods
type PropertyService interface {
	Create(ctx context.Context, actor auth.Actor, input PropertyInput) (*models.Property, error)
	List(ctx context.Context, actor auth.Actor) ([]*models.Property, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Property, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input PropertyInput) (*models.Property, error)
	AddTenant(ctx context.Context, actor auth.Actor, id uint, email string) (*models.Property, error)
	RemoveTenant(ctx context.Context, actor auth.Actor, id, tenantID uint) (*models.Property, error)
}

// propertyService implements PropertyService interface
type propertyService struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	logger       *logger.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(propertyRepo repository.PropertyRepository, userRepo repository.UserRepository, logger *logger.Logger) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (s *propertyService) Create(ctx context.Context, actor auth.Actor, input PropertyInput) (*models.Property, error) {
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	property := &models.Property{
		LandlordID: actor.ID,
		Name:       strings.TrimSpace(input.Name),
		Address:    input.Address,
		RentAmount: input.RentAmount,
		Utilities:  input.Utilities,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		s.logger.WithError(err).WithField("landlord_id", actor.ID).Error("Failed to create property")
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"property_id": property.ID,
		"landlord_id": actor.ID,
	}).Info("Property created successfully")

	return s.propertyRepo.GetByID(ctx, property.ID)
}

// List returns the landlord's own properties or the properties a tenant rents
func (s *propertyService) List(ctx context.Context, actor auth.Actor) ([]*models.Property, error) {
	switch actor.Role {
	case models.RoleLandlord:
		return s.propertyRepo.ListByLandlord(ctx, actor.ID)
	case models.RoleTenant:
		return s.propertyRepo.ListByTenant(ctx, actor.ID)
	default:
		return nil, auth.ErrForbidden
	}
}

// Get returns a property visible to the actor: its landlord or one of its tenants
func (s *propertyService) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "property", id)
	}
	switch actor.Role {
	case models.RoleLandlord:
		if property.LandlordID != actor.ID {
			return nil, ErrNotAuthorized
		}
	case models.RoleTenant:
		if !property.HasTenant(actor.ID) {
			return nil, ErrNotAuthorized
		}
	default:
		return nil, auth.ErrForbidden
	}
	return property, nil
}

func (s *propertyService) Update(ctx context.Context, actor auth.Actor, id uint, input PropertyInput) (*models.Property, error) {
	property, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	property.Name = strings.TrimSpace(input.Name)
	property.Address = input.Address
	property.RentAmount = input.RentAmount
	property.Utilities = input.Utilities
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		s.logger.WithError(err).WithField("property_id", id).Error("Failed to update property")
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.logger.WithField("property_id", id).Info("Property updated successfully")
	return s.propertyRepo.GetByID(ctx, id)
}

// AddTenant links an existing tenant account, found by email, to the property
func (s *propertyService) AddTenant(ctx context.Context, actor auth.Actor, id uint, email string) (*models.Property, error) {
	property, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	tenant, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("tenant with email", email)
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant.Role != models.RoleTenant {
		return nil, invalidInput("user %s is not a tenant", tenant.Email)
	}
	if property.HasTenant(tenant.ID) {
		return nil, fmt.Errorf("%w: tenant %s already assigned to property", ErrConflict, tenant.Email)
	}

	if err := s.propertyRepo.AddTenant(ctx, property, tenant); err != nil {
		s.logger.WithError(err).WithField("property_id", id).Error("Failed to add tenant")
		return nil, fmt.Errorf("failed to add tenant: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"property_id": id,
		"tenant_id":   tenant.ID,
	}).Info("Tenant added to property")

	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) RemoveTenant(ctx context.Context, actor auth.Actor, id, tenantID uint) (*models.Property, error) {
	property, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var tenant *models.User
	for i := range property.Tenants {
		if property.Tenants[i].ID == tenantID {
			tenant = &property.Tenants[i]
			break
		}
	}
	if tenant == nil {
		return nil, notFound("tenant on property", tenantID)
	}

	if err := s.propertyRepo.RemoveTenant(ctx, property, tenant); err != nil {
		s.logger.WithError(err).WithField("property_id", id).Error("Failed to remove tenant")
		return nil, fmt.Errorf("failed to remove tenant: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"property_id": id,
		"tenant_id":   tenantID,
	}).Info("Tenant removed from property")

	return s.propertyRepo.GetByID(ctx, id)
}

// owned loads a property the landlord actor owns
func (s *propertyService) owned(ctx context.Context, actor auth.Actor, id uint) (*models.Property, error) {
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "property", id)
	}
	if property.LandlordID != actor.ID {
		return nil, ErrNotAuthorized
	}
	return property, nil
}
