package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"letly-be-svc/internal/money"
)

// SplitType says how a recurring utility is shared between tenants
type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitCustom SplitType = "custom"
)

// Address is a postal address stored inline on the property
type Address struct {
	Street  string `json:"street" gorm:"column:street"`
	City    string `json:"city" gorm:"column:city"`
	State   string `json:"state" gorm:"column:state"`
	ZipCode string `json:"zip_code" gorm:"column:zip_code"`
}

// TenantPercentage is one tenant's share of a custom-split utility
type TenantPercentage struct {
	TenantID   uint    `json:"tenant_id"`
	Percentage float64 `json:"percentage"`
}

// UtilityCharge is a recurring utility stored on the property
type UtilityCharge struct {
	Name        string             `json:"name"`
	Amount      float64            `json:"amount"`
	SplitType   SplitType          `json:"split_type"`
	CustomSplit []TenantPercentage `json:"custom_split,omitempty"`
}

// Validate checks name, amount and split policy. Custom percentages must add up to 100.
func (u UtilityCharge) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("utility name is required")
	}
	if !money.Valid(u.Amount) {
		return fmt.Errorf("utility %q: amount must be a non-negative number", u.Name)
	}
	switch u.SplitType {
	case "", SplitEqual:
		return nil
	case SplitCustom:
		if len(u.CustomSplit) == 0 {
			return nil
		}
		total := 0.0
		for _, p := range u.CustomSplit {
			if !money.Valid(p.Percentage) || p.Percentage > 100 {
				return fmt.Errorf("utility %q: percentage must be between 0 and 100", u.Name)
			}
			total += p.Percentage
		}
		if !money.Equal(total, 100) {
			return fmt.Errorf("utility %q: custom split percentages add up to %v, expected 100", u.Name, total)
		}
		return nil
	default:
		return fmt.Errorf("utility %q: unknown split type %q", u.Name, u.SplitType)
	}
}

// Property represents the properties table
type Property struct {
	ID         uint            `json:"id" gorm:"primarykey"`
	DocumentID string          `json:"document_id" gorm:"column:document_id;size:36;uniqueIndex"`
	LandlordID uint            `json:"landlord_id" gorm:"column:landlord_id;not null;index"`
	Landlord   *User           `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Name       string          `json:"name" gorm:"column:name;not null"`
	Address    Address         `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	RentAmount float64         `json:"rent_amount" gorm:"column:rent_amount;not null;default:0"`
	Utilities  []UtilityCharge `json:"utilities" gorm:"column:utilities;serializer:json;type:text"`
	Tenants    []User          `json:"tenants" gorm:"many2many:property_tenants;"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for Property
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a document id
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.DocumentID == "" {
		p.DocumentID = uuid.New().String()
	}
	return nil
}

// TenantIDs returns the ids of the assigned tenants in stored order
func (p *Property) TenantIDs() []uint {
	ids := make([]uint, len(p.Tenants))
	for i, t := range p.Tenants {
		ids[i] = t.ID
	}
	return ids
}

// HasTenant reports whether userID rents this property
func (p *Property) HasTenant(userID uint) bool {
	for _, t := range p.Tenants {
		if t.ID == userID {
			return true
		}
	}
	return false
}

// UtilitiesTotal sums the stored utility amounts
func (p *Property) UtilitiesTotal() float64 {
	total := 0.0
	for _, u := range p.Utilities {
		total += u.Amount
	}
	return total
}
