package response

import (
	"time"

	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/models"
)

// GenerateBillsResponse is returned after bills are generated for a period
type GenerateBillsResponse struct {
	PropertyID uint            `json:"property_id" example:"1"`
	Period     string          `json:"period" example:"2025-03"`
	Bills      []*models.Bill  `json:"bills"`
	Summary    billing.Summary `json:"summary"`
}

// BillSummaryResponse represents a status breakdown for one tenant or landlord
type BillSummaryResponse struct {
	Period string `json:"period,omitempty" example:"2025-03"`
	billing.StatusSummary
}

// PropertyBillSummary is the status breakdown for one property
type PropertyBillSummary struct {
	PropertyID   uint   `json:"property_id" example:"1"`
	PropertyName string `json:"property_name" example:"Maple House"`
	billing.StatusSummary
}

// LandlordBillSummaryResponse aggregates all of a landlord's properties
type LandlordBillSummaryResponse struct {
	Period     string                `json:"period,omitempty" example:"2025-03"`
	Overall    billing.StatusSummary `json:"overall"`
	Properties []PropertyBillSummary `json:"properties"`
}

// BillExportRow is one row of the landlord bill export
type BillExportRow struct {
	BillID       uint       `json:"bill_id"`
	PropertyName string     `json:"property_name"`
	TenantName   string     `json:"tenant_name"`
	TenantEmail  string     `json:"tenant_email"`
	Period       string     `json:"period"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	SplitPercent float64    `json:"split_percentage"`
	DueDate      time.Time  `json:"due_date"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
}
