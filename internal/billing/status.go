package billing

// Status is the payment state of a bill.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Payable reports whether a bill in this status may be marked paid.
func (s Status) Payable() bool {
	return s == StatusPending || s == StatusOverdue
}

// StatusSummary counts bills and their amounts by status.
type StatusSummary struct {
	TotalBills    int     `json:"total_bills"`
	TotalAmount   float64 `json:"total_amount"`
	PendingBills  int     `json:"pending_bills"`
	PendingAmount float64 `json:"pending_amount"`
	PaidBills     int     `json:"paid_bills"`
	PaidAmount    float64 `json:"paid_amount"`
	OverdueBills  int     `json:"overdue_bills"`
	OverdueAmount float64 `json:"overdue_amount"`
}

// Add folds one bill into the summary. Unknown statuses count toward the totals only.
func (s *StatusSummary) Add(status Status, amount float64) {
	s.TotalBills++
	s.TotalAmount += amount
	switch status {
	case StatusPending:
		s.PendingBills++
		s.PendingAmount += amount
	case StatusPaid:
		s.PaidBills++
		s.PaidAmount += amount
	case StatusOverdue:
		s.OverdueBills++
		s.OverdueAmount += amount
	}
}

// Outstanding is what is still owed.
func (s StatusSummary) Outstanding() float64 {
	return s.PendingAmount + s.OverdueAmount
}
