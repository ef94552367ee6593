// Package billing turns a property's charges for one period into per-tenant bills.
//
// Rent and utilities form a single pool that is divided between tenants and then
// broken back into a rent bill and a utility bill in the pool's own proportion.
// Every fee is divided on its own. Generate does no I/O; the caller loads the
// property, persists the returned lines and sends notifications.
package billing

import (
	"fmt"
	"strings"
	"time"

	"letly-be-svc/internal/money"
)

// Category classifies a bill.
type Category string

const (
	CategoryRent    Category = "rent"
	CategoryUtility Category = "utility"
	CategoryOther   Category = "other"
)

// Property is the part of a property the engine needs.
type Property struct {
	ID         uint
	Name       string
	RentAmount float64
}

// Charge is a named amount, used for utilities and fees.
type Charge struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Details string  `json:"details,omitempty"`
}

// Assignment gives one tenant an explicit amount of a charge.
type Assignment struct {
	TenantID uint    `json:"tenant_id"`
	Amount   float64 `json:"amount"`
}

// FeeAssignment holds custom assignments for the fee with the same name.
type FeeAssignment struct {
	FeeName     string       `json:"fee_name"`
	Assignments []Assignment `json:"assignments"`
}

// Request is everything needed to bill one property for one period.
type Request struct {
	Period          string
	DueDate         time.Time
	RentAmount      float64
	Utilities       []Charge
	Fees            []Charge
	PoolAssignments []Assignment
	FeeAssignments  []FeeAssignment
}

// Line is one tenant's bill before it is persisted.
type Line struct {
	PropertyID      uint      `json:"property_id"`
	TenantID        uint      `json:"tenant_id"`
	Category        Category  `json:"category"`
	Amount          float64   `json:"amount"`
	TotalAmount     float64   `json:"total_amount"`
	SplitPercentage float64   `json:"split_percentage"`
	Description     string    `json:"description"`
	Details         string    `json:"details,omitempty"`
	DueDate         time.Time `json:"due_date"`
	Period          string    `json:"period"`

	// Group identifies the charge the line was carved from: "rent", "utility"
	// or "fee:<index>". Lines in one group sum to TotalAmount.
	Group string `json:"-"`
}

// Summary is a straight sum over the emitted lines.
type Summary struct {
	TotalBills      int     `json:"total_bills"`
	TotalAmount     float64 `json:"total_amount"`
	RentAmount      float64 `json:"rent_amount"`
	UtilitiesAmount float64 `json:"utilities_amount"`
	FeesAmount      float64 `json:"other_fees_amount"`
}

// Result is the output of Generate.
type Result struct {
	Bills   []Line  `json:"bills"`
	Summary Summary `json:"summary"`
}

// share is one tenant's part of a charge.
type share struct {
	tenantID uint
	amount   float64
}

// Generate allocates the request across tenants. It is deterministic: lines come
// out in tenant order, rent before utility, followed by each fee in request order.
// Any invalid input fails the whole run and no lines are returned.
func Generate(property Property, tenants []uint, req Request) (*Result, error) {
	if len(tenants) == 0 {
		return nil, invalid("tenants", nil, ErrNoTenants)
	}
	if _, err := ParsePeriod(req.Period); err != nil {
		return nil, err
	}
	if req.DueDate.IsZero() {
		return nil, invalid("due_date", nil, ErrMissingDueDate)
	}
	if err := validateAmounts(req); err != nil {
		return nil, err
	}

	utilities := billable(req.Utilities)
	fees := billable(req.Fees)

	utilitiesTotal := 0.0
	for _, u := range utilities {
		utilitiesTotal += u.Amount
	}
	poolTotal := req.RentAmount + utilitiesTotal

	if poolTotal == 0 && len(fees) == 0 {
		return nil, invalid("charges", nil, ErrEmptyBill)
	}

	// Resolve every allocation before emitting anything.
	var poolShares []share
	if poolTotal > 0 {
		var err error
		poolShares, err = allocate(tenants, poolTotal, req.PoolAssignments)
		if err != nil {
			return nil, invalid("pool_assignments", poolTotal, err)
		}
	}
	feeShares := make([][]share, len(fees))
	for i, fee := range fees {
		shares, err := allocate(tenants, fee.Amount, assignmentsFor(fee.Name, req.FeeAssignments))
		if err != nil {
			return nil, invalid("fee_assignments."+fee.Name, fee.Amount, err)
		}
		feeShares[i] = shares
	}

	lines := make([]Line, 0, 2*len(tenants)+len(fees)*len(tenants))
	base := Line{
		PropertyID: property.ID,
		DueDate:    req.DueDate,
		Period:     req.Period,
	}

	for _, s := range poolShares {
		rentPortion := money.Portion(s.amount, req.RentAmount, poolTotal)
		utilityPortion := s.amount - rentPortion
		percentage := money.Percent(s.amount, poolTotal)

		if rentPortion > 0 {
			l := base
			l.TenantID = s.tenantID
			l.Category = CategoryRent
			l.Amount = rentPortion
			l.TotalAmount = req.RentAmount
			l.SplitPercentage = percentage
			l.Description = fmt.Sprintf("Rent for %s - %s", property.Name, req.Period)
			l.Group = string(CategoryRent)
			lines = append(lines, l)
		}
		if utilityPortion > 0 {
			l := base
			l.TenantID = s.tenantID
			l.Category = CategoryUtility
			l.Amount = utilityPortion
			l.TotalAmount = utilitiesTotal
			l.SplitPercentage = percentage
			l.Description = fmt.Sprintf("Utilities for %s - %s", property.Name, req.Period)
			l.Details = utilityDetails(utilities)
			l.Group = string(CategoryUtility)
			lines = append(lines, l)
		}
	}

	for i, fee := range fees {
		details := fee.Details
		if details == "" {
			details = fee.Name
		}
		description := fmt.Sprintf("%s - %s - %s", fee.Name, property.Name, req.Period)
		if fee.Details != "" {
			description = fmt.Sprintf("%s (%s) - %s - %s", fee.Name, fee.Details, property.Name, req.Period)
		}

		for _, s := range feeShares[i] {
			l := base
			l.TenantID = s.tenantID
			l.Category = CategoryOther
			l.Amount = s.amount
			l.TotalAmount = fee.Amount
			l.SplitPercentage = money.Percent(s.amount, fee.Amount)
			l.Description = description
			l.Details = details
			l.Group = fmt.Sprintf("fee:%d", i)
			lines = append(lines, l)
		}
	}

	if len(lines) == 0 {
		return nil, invalid("charges", nil, ErrEmptyBill)
	}
	if err := Verify(lines); err != nil {
		return nil, err
	}

	return &Result{
		Bills:   lines,
		Summary: Summarize(lines),
	}, nil
}

func validateAmounts(req Request) error {
	if !money.Valid(req.RentAmount) {
		return invalid("rent_amount", req.RentAmount, ErrInvalidAmount)
	}
	for _, u := range req.Utilities {
		if !money.Valid(u.Amount) {
			return invalid("utilities."+u.Name, u.Amount, ErrInvalidAmount)
		}
	}
	for _, f := range req.Fees {
		if !money.Valid(f.Amount) {
			return invalid("fees."+f.Name, f.Amount, ErrInvalidAmount)
		}
	}
	for _, a := range req.PoolAssignments {
		if !money.Valid(a.Amount) {
			return invalid("pool_assignments", a.Amount, ErrInvalidAmount)
		}
	}
	for _, fa := range req.FeeAssignments {
		for _, a := range fa.Assignments {
			if !money.Valid(a.Amount) {
				return invalid("fee_assignments."+fa.FeeName, a.Amount, ErrInvalidAmount)
			}
		}
	}
	return nil
}

// billable drops unnamed and zero-amount charges.
func billable(charges []Charge) []Charge {
	out := make([]Charge, 0, len(charges))
	for _, c := range charges {
		name := strings.TrimSpace(c.Name)
		if name == "" || !money.Positive(c.Amount) {
			continue
		}
		c.Name = name
		out = append(out, c)
	}
	return out
}

// assignmentsFor returns the assignments of the first entry naming fee.
func assignmentsFor(fee string, all []FeeAssignment) []Assignment {
	for _, fa := range all {
		if strings.TrimSpace(fa.FeeName) == fee {
			return fa.Assignments
		}
	}
	return nil
}

// allocate divides total across tenants. Positive assignments for known tenants
// switch the charge to custom mode: assigned amounts are used as-is, repeated
// tenants are merged, unassigned tenants get nothing and the amounts must add up
// to total. Without them the total is split equally.
func allocate(tenants []uint, total float64, assignments []Assignment) ([]share, error) {
	known := make(map[uint]bool, len(tenants))
	for _, id := range tenants {
		known[id] = true
	}

	custom := make(map[uint]float64)
	for _, a := range assignments {
		if !known[a.TenantID] || !money.Positive(a.Amount) {
			continue
		}
		custom[a.TenantID] += a.Amount
	}

	shares := make([]share, 0, len(tenants))
	if len(custom) == 0 {
		each := money.Split(total, len(tenants))
		seen := make(map[uint]bool, len(tenants))
		for _, id := range tenants {
			if seen[id] {
				continue
			}
			seen[id] = true
			shares = append(shares, share{tenantID: id, amount: each})
		}
		if len(shares) != len(tenants) {
			// duplicate tenant ids: re-split over the distinct set
			each = money.Split(total, len(shares))
			for i := range shares {
				shares[i].amount = each
			}
		}
		return shares, nil
	}

	assigned := 0.0
	for _, id := range tenants {
		amount, ok := custom[id]
		if !ok {
			continue
		}
		delete(custom, id)
		assigned += amount
		shares = append(shares, share{tenantID: id, amount: amount})
	}
	if !money.Equal(assigned, total) {
		return nil, fmt.Errorf("%w: assigned %s of %s", ErrAllocationMismatch, money.Format(assigned), money.Format(total))
	}
	return shares, nil
}

func utilityDetails(utilities []Charge) string {
	names := make([]string, len(utilities))
	for i, u := range utilities {
		names[i] = u.Name
	}
	return "Combined utilities: " + strings.Join(names, ", ")
}
