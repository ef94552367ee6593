package repository

import (
	"context"

	"gorm.io/gorm"

	"letly-be-svc/internal/models"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uint) (*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uint) ([]*models.Property, error)
	ListByTenant(ctx context.Context, tenantID uint) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	AddTenant(ctx context.Context, property *models.Property, tenant *models.User) error
	RemoveTenant(ctx context.Context, property *models.Property, tenant *models.User) error
}

// propertyRepository implements PropertyRepository
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new instance of PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// Create inserts a property without touching tenant links
func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Omit("Tenants").Create(property).Error
}

// GetByID retrieves a property with its landlord and tenants, tenants in id order
func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Landlord").
		Preload("Tenants", func(db *gorm.DB) *gorm.DB { return db.Order("users.id ASC") }).
		Where("id = ?", id).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// ListByLandlord retrieves every property owned by landlordID
func (r *propertyRepository) ListByLandlord(ctx context.Context, landlordID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Tenants", func(db *gorm.DB) *gorm.DB { return db.Order("users.id ASC") }).
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	return properties, err
}

// ListByTenant retrieves every property tenantID rents
func (r *propertyRepository) ListByTenant(ctx context.Context, tenantID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Preload("Landlord").
		Preload("Tenants", func(db *gorm.DB) *gorm.DB { return db.Order("users.id ASC") }).
		Joins("JOIN property_tenants pt ON pt.property_id = properties.id").
		Where("pt.user_id = ?", tenantID).
		Order("properties.created_at DESC, properties.id DESC").
		Find(&properties).Error
	return properties, err
}

// Update saves the editable columns of a property
func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Model(property).
		Select("name", "address_street", "address_city", "address_state", "address_zip_code", "rent_amount", "utilities").
		Updates(property).Error
}

// AddTenant links tenant to property
func (r *propertyRepository) AddTenant(ctx context.Context, property *models.Property, tenant *models.User) error {
	return r.db.WithContext(ctx).Model(property).Association("Tenants").Append(tenant)
}

// RemoveTenant unlinks tenant from property, the user row stays
func (r *propertyRepository) RemoveTenant(ctx context.Context, property *models.Property, tenant *models.User) error {
	return r.db.WithContext(ctx).Model(property).Association("Tenants").Delete(tenant)
}
