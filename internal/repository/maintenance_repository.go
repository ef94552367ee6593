package repository

import (
	"context"

	"gorm.io/gorm"

	"letly-be-svc/internal/models"
)

// MaintenanceRepository defines the interface for maintenance request data operations
type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]*models.MaintenanceRequest, error)
	ListByLandlord(ctx context.Context, landlordID uint) ([]*models.MaintenanceRequest, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, req *models.MaintenanceRequest) error
}

// maintenanceRepository implements MaintenanceRepository
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new instance of MaintenanceRepository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{
		db: db,
	}
}

// Create inserts a new request
func (r *maintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Omit("Property", "Tenant").Create(req).Error
}

// GetByID retrieves a request with its property and tenant
func (r *maintenanceRepository) GetByID(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByTenant retrieves a tenant's requests, newest first
func (r *maintenanceRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.MaintenanceRequest, error) {
	var reqs []*models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListByLandlord retrieves requests across the landlord's properties, newest first
func (r *maintenanceRepository) ListByLandlord(ctx context.Context, landlordID uint) ([]*models.MaintenanceRequest, error) {
	var reqs []*models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Joins("JOIN properties p ON p.id = maintenance_requests.property_id").
		Where("p.landlord_id = ?", landlordID).
		Order("maintenance_requests.created_at DESC, maintenance_requests.id DESC").
		Find(&reqs).Error
	return reqs, err
}

// ListByProperty retrieves requests for one property, newest first
func (r *maintenanceRepository) ListByProperty(ctx context.Context, propertyID uint) ([]*models.MaintenanceRequest, error) {
	var reqs []*models.MaintenanceRequest
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("property_id = ?", propertyID).
		Order("created_at DESC, id DESC").
		Find(&reqs).Error
	return reqs, err
}

// UpdateStatus saves status, landlord notes and cost
func (r *maintenanceRepository) UpdateStatus(ctx context.Context, req *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Model(req).
		Select("status", "landlord_notes", "cost_amount", "updated_at").
		Updates(req).Error
}
