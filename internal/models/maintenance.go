package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceStatus is the state of a maintenance request
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceResolved   MaintenanceStatus = "resolved"
	MaintenanceRejected   MaintenanceStatus = "rejected"
)

// Valid reports whether s is a known maintenance status
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceResolved, MaintenanceRejected:
		return true
	}
	return false
}

// MaintenanceRequest represents the maintenance_requests table
type MaintenanceRequest struct {
	ID            uint              `json:"id" gorm:"primarykey"`
	DocumentID    string            `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	PropertyID    uint              `json:"property_id" gorm:"column:property_id;not null;index"`
	Property      *Property         `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	TenantID      uint              `json:"tenant_id" gorm:"column:tenant_id;not null;index"`
	Tenant        *User             `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Title         string            `json:"title" gorm:"column:title;not null"`
	Description   string            `json:"description" gorm:"column:description;not null"`
	Status        MaintenanceStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending'"`
	LandlordNotes string            `json:"landlord_notes,omitempty" gorm:"column:landlord_notes"`
	CostAmount    *float64          `json:"cost_amount,omitempty" gorm:"column:cost_amount"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName sets the insert table name for MaintenanceRequest
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// BeforeCreate assigns a document id and the initial status
func (m *MaintenanceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.DocumentID == "" {
		m.DocumentID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = MaintenancePending
	}
	return nil
}
