package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"letly-be-svc/internal/billing"
)

// Bill represents the bills table. Rows are written by bill generation, only
// status and paid_at change afterwards.
type Bill struct {
	ID              uint             `json:"id" gorm:"primarykey"`
	DocumentID      string           `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	PropertyID      uint             `json:"property_id" gorm:"column:property_id;not null;index:idx_bills_property_period,priority:1"`
	Property        *Property        `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	TenantID        uint             `json:"tenant_id" gorm:"column:tenant_id;not null;index"`
	Tenant          *User            `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Category        billing.Category `json:"category" gorm:"column:category;type:varchar(20);not null"`
	Amount          float64          `json:"amount" gorm:"column:amount;not null"`
	Description     string           `json:"description" gorm:"column:description"`
	Details         string           `json:"details,omitempty" gorm:"column:details"`
	DueDate         time.Time        `json:"due_date" gorm:"column:due_date;not null;index"`
	Status          billing.Status   `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	PaidAt          *time.Time       `json:"paid_at,omitempty" gorm:"column:paid_at"`
	Period          string           `json:"period" gorm:"column:period;type:varchar(7);not null;index:idx_bills_property_period,priority:2"`
	SplitPercentage float64          `json:"split_percentage" gorm:"column:split_percentage"`
	TotalAmount     float64          `json:"total_amount" gorm:"column:total_amount"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName sets the insert table name for Bill
func (Bill) TableName() string {
	return "bills"
}

// BeforeCreate assigns a document id and the initial status
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.DocumentID == "" {
		b.DocumentID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = billing.StatusPending
	}
	return nil
}

// NewBillFromLine converts an allocated line into a pending bill
func NewBillFromLine(l billing.Line) *Bill {
	return &Bill{
		PropertyID:      l.PropertyID,
		TenantID:        l.TenantID,
		Category:        l.Category,
		Amount:          l.Amount,
		Description:     l.Description,
		Details:         l.Details,
		DueDate:         l.DueDate,
		Status:          billing.StatusPending,
		Period:          l.Period,
		SplitPercentage: l.SplitPercentage,
		TotalAmount:     l.TotalAmount,
	}
}
