package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/models"
)

// BillFilter narrows bill listings. Zero values match everything.
type BillFilter struct {
	Period     string
	PropertyID uint
	Status     billing.Status
	// Page is 1-based. Paging applies only when Limit > 0.
	Page  int
	Limit int
}

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	ReplacePeriod(ctx context.Context, propertyID uint, period string, bills []*models.Bill) (deleted int64, err error)
	GetByID(ctx context.Context, id uint) (*models.Bill, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) (bool, error)
	ListByTenant(ctx context.Context, tenantID uint, filter BillFilter) ([]*models.Bill, error)
	ListByLandlord(ctx context.Context, landlordID uint, filter BillFilter) ([]*models.Bill, error)
	CountByTenant(ctx context.Context, tenantID uint, filter BillFilter) (int64, error)
	CountByLandlord(ctx context.Context, landlordID uint, filter BillFilter) (int64, error)
	ListByPropertyPeriod(ctx context.Context, propertyID uint, period string) ([]*models.Bill, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// billRepository implements BillRepository
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new instance of BillRepository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{
		db: db,
	}
}

// ReplacePeriod removes every bill of the property for period and inserts bills,
// all in one transaction
func (r *billRepository) ReplacePeriod(ctx context.Context, propertyID uint, period string, bills []*models.Bill) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("property_id = ? AND period = ?", propertyID, period).Delete(&models.Bill{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		if len(bills) == 0 {
			return nil
		}
		return tx.CreateInBatches(bills, 100).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetByID retrieves a bill with its property and tenant
func (r *billRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Where("id = ?", id).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// MarkPaid moves a payable bill to paid. It reports false when the bill was
// already paid so concurrent callers cannot both win.
func (r *billRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("id = ? AND status IN ?", id, []billing.Status{billing.StatusPending, billing.StatusOverdue}).
		Updates(map[string]interface{}{
			"status":  billing.StatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByTenant retrieves a tenant's bills ordered by due date
func (r *billRepository) ListByTenant(ctx context.Context, tenantID uint, filter BillFilter) ([]*models.Bill, error) {
	var bills []*models.Bill
	query := r.db.WithContext(ctx).
		Preload("Property").
		Where("bills.tenant_id = ?", tenantID)
	err := applyPage(applyBillFilter(query, filter), filter).
		Order("bills.due_date ASC, bills.id ASC").
		Find(&bills).Error
	return bills, err
}

// ListByLandlord retrieves bills across the landlord's properties ordered by due date
func (r *billRepository) ListByLandlord(ctx context.Context, landlordID uint, filter BillFilter) ([]*models.Bill, error) {
	var bills []*models.Bill
	query := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Joins("JOIN properties p ON p.id = bills.property_id").
		Where("p.landlord_id = ?", landlordID)
	err := applyPage(applyBillFilter(query, filter), filter).
		Order("bills.due_date ASC, bills.id ASC").
		Find(&bills).Error
	return bills, err
}

// CountByTenant counts a tenant's bills matching filter, ignoring paging
func (r *billRepository) CountByTenant(ctx context.Context, tenantID uint, filter BillFilter) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("bills.tenant_id = ?", tenantID)
	err := applyBillFilter(query, filter).Count(&total).Error
	return total, err
}

// CountByLandlord counts bills across the landlord's properties matching filter, ignoring paging
func (r *billRepository) CountByLandlord(ctx context.Context, landlordID uint, filter BillFilter) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Bill{}).
		Joins("JOIN properties p ON p.id = bills.property_id").
		Where("p.landlord_id = ?", landlordID)
	err := applyBillFilter(query, filter).Count(&total).Error
	return total, err
}

// ListByPropertyPeriod retrieves the current bill set of one property and period
func (r *billRepository) ListByPropertyPeriod(ctx context.Context, propertyID uint, period string) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("property_id = ? AND period = ?", propertyID, period).
		Order("id ASC").
		Find(&bills).Error
	return bills, err
}

// MarkOverdue moves pending bills whose due date has passed to overdue
func (r *billRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Bill{}).
		Where("status = ? AND due_date < ?", billing.StatusPending, now).
		Update("status", billing.StatusOverdue)
	return result.RowsAffected, result.Error
}

func applyBillFilter(query *gorm.DB, filter BillFilter) *gorm.DB {
	if filter.Period != "" {
		query = query.Where("bills.period = ?", filter.Period)
	}
	if filter.PropertyID != 0 {
		query = query.Where("bills.property_id = ?", filter.PropertyID)
	}
	if filter.Status != "" {
		query = query.Where("bills.status = ?", filter.Status)
	}
	return query
}

func applyPage(query *gorm.DB, filter BillFilter) *gorm.DB {
	if filter.Limit <= 0 {
		return query
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
}
