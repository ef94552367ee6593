package billing

import (
	"fmt"

	"letly-be-svc/internal/money"
)

// GroupTotal compares what was allocated from one charge against the charge itself.
type GroupTotal struct {
	Group     string   `json:"group"`
	Category  Category `json:"category"`
	Total     float64  `json:"total"`
	Allocated float64  `json:"allocated"`
	Bills     int      `json:"bills"`
}

// Balanced reports whether the allocation matches the charge.
func (g GroupTotal) Balanced() bool {
	return money.Equal(g.Allocated, g.Total)
}

// Summarize totals lines by category.
func Summarize(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		s.TotalBills++
		s.TotalAmount += l.Amount
		switch l.Category {
		case CategoryRent:
			s.RentAmount += l.Amount
		case CategoryUtility:
			s.UtilitiesAmount += l.Amount
		case CategoryOther:
			s.FeesAmount += l.Amount
		}
	}
	return s
}

// Reconcile groups lines by source charge, in first-seen order.
func Reconcile(lines []Line) []GroupTotal {
	index := make(map[string]int)
	var groups []GroupTotal
	for _, l := range lines {
		key := l.Group
		if key == "" {
			key = fmt.Sprintf("%s:%s", l.Category, l.Description)
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupTotal{Group: key, Category: l.Category, Total: l.TotalAmount})
		}
		groups[i].Allocated += l.Amount
		groups[i].Bills++
	}
	return groups
}

// Verify checks the invariants of a generated bill set: every amount is
// positive, every percentage lies in [0, 100] and matches amount/total, and
// each charge is fully allocated.
func Verify(lines []Line) error {
	for i, l := range lines {
		if !money.Positive(l.Amount) {
			return fmt.Errorf("%w: bill %d has non-positive amount %v", ErrReconciliation, i, l.Amount)
		}
		if l.SplitPercentage < 0 || l.SplitPercentage > 100+money.Epsilon {
			return fmt.Errorf("%w: bill %d has split percentage %v", ErrReconciliation, i, l.SplitPercentage)
		}
		if !money.Equal(l.SplitPercentage*l.TotalAmount/100, l.Amount) {
			return fmt.Errorf("%w: bill %d is %v%% of %v but amounts to %v",
				ErrReconciliation, i, l.SplitPercentage, l.TotalAmount, l.Amount)
		}
	}
	for _, g := range Reconcile(lines) {
		if !g.Balanced() {
			return fmt.Errorf("%w: %s allocated %s of %s", ErrReconciliation,
				g.Group, money.Format(g.Allocated), money.Format(g.Total))
		}
	}
	return nil
}
