package service

import (
	"context"
	"fmt"
	"strings"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/money"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

// MaintenanceUpdateInput is a landlord's change to a maintenance request
type MaintenanceUpdateInput struct {
	Status        models.MaintenanceStatus
	LandlordNotes *string
	CostAmount    *float64
}

// MaintenanceService interface defines maintenance request methods
type MaintenanceService interface {
	Create(ctx context.Context, actor auth.Actor, propertyID uint, title, description string) (*models.MaintenanceRequest, error)
	List(ctx context.Context, actor auth.Actor) ([]*models.MaintenanceRequest, error)
	ListForProperty(ctx context.Context, actor auth.Actor, propertyID uint) ([]*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, actor auth.Actor, id uint, input MaintenanceUpdateInput) (*models.MaintenanceRequest, error)
}

// maintenanceService implements MaintenanceService interface
type maintenanceService struct {
	maintenanceRepo repository.MaintenanceRepository
	propertyRepo    repository.PropertyRepository
	notifier        notifier.Notifier
	logger          *logger.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	maintenanceRepo repository.MaintenanceRepository,
	propertyRepo repository.PropertyRepository,
	notifier notifier.Notifier,
	logger *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		propertyRepo:    propertyRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// Create files a request from a tenant of the property and tells the landlord
func (s *maintenanceService) Create(ctx context.Context, actor auth.Actor, propertyID uint, title, description string) (*models.MaintenanceRequest, error) {
	if err := actor.Require(models.RoleTenant); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, invalidInput("title and description are required")
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, lookupErr(err, "property", propertyID)
	}
	if !property.HasTenant(actor.ID) {
		return nil, ErrNotAuthorized
	}

	req := &models.MaintenanceRequest{
		PropertyID:  property.ID,
		TenantID:    actor.ID,
		Title:       title,
		Description: description,
		Status:      models.MaintenancePending,
	}
	if err := s.maintenanceRepo.Create(ctx, req); err != nil {
		s.logger.WithError(err).WithField("property_id", propertyID).Error("Failed to create maintenance request")
		return nil, fmt.Errorf("failed to create maintenance request: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id":  req.ID,
		"property_id": property.ID,
		"tenant_id":   actor.ID,
	}).Info("Maintenance request created")

	created, err := s.maintenanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, lookupErr(err, "maintenance request", req.ID)
	}
	if property.Landlord != nil && created.Tenant != nil {
		s.notifier.NewMaintenanceRequest(property.Landlord, created.Tenant, property.Name, created)
	}
	return created, nil
}

// List returns the tenant's own requests or every request on the landlord's properties
func (s *maintenanceService) List(ctx context.Context, actor auth.Actor) ([]*models.MaintenanceRequest, error) {
	switch actor.Role {
	case models.RoleLandlord:
		return s.maintenanceRepo.ListByLandlord(ctx, actor.ID)
	case models.RoleTenant:
		return s.maintenanceRepo.ListByTenant(ctx, actor.ID)
	default:
		return nil, auth.ErrForbidden
	}
}

// ListForProperty returns the requests of a property to its landlord or tenants
func (s *maintenanceService) ListForProperty(ctx context.Context, actor auth.Actor, propertyID uint) ([]*models.MaintenanceRequest, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, lookupErr(err, "property", propertyID)
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
	return s.maintenanceRepo.ListByProperty(ctx, propertyID)
}

// UpdateStatus lets the property's landlord move a request along and tells the tenant
func (s *maintenanceService) UpdateStatus(ctx context.Context, actor auth.Actor, id uint, input MaintenanceUpdateInput) (*models.MaintenanceRequest, error) {
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, err
	}
	if !input.Status.Valid() {
		return nil, invalidInput("unknown maintenance status %q", input.Status)
	}
	if input.CostAmount != nil && !money.Valid(*input.CostAmount) {
		return nil, invalidInput("cost_amount must be a non-negative number")
	}

	req, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "maintenance request", id)
	}
	if req.Property == nil || req.Property.LandlordID != actor.ID {
		return nil, ErrNotAuthorized
	}

	req.Status = input.Status
	if input.LandlordNotes != nil {
		req.LandlordNotes = strings.TrimSpace(*input.LandlordNotes)
	}
	if input.CostAmount != nil {
		req.CostAmount = input.CostAmount
	}
	if err := s.maintenanceRepo.UpdateStatus(ctx, req); err != nil {
		s.logger.WithError(err).WithField("request_id", id).Error("Failed to update maintenance request")
		return nil, fmt.Errorf("failed to update maintenance request: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"request_id": id,
		"status":     req.Status,
	}).Info("Maintenance request updated")

	updated, err := s.maintenanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "maintenance request", id)
	}
	if updated.Tenant != nil && updated.Property != nil {
		s.notifier.MaintenanceUpdate(updated.Tenant, updated.Property.Name, updated)
	}
	return updated, nil
}
