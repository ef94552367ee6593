package billing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_GroupsByCharge(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 800
	req.Utilities = []Charge{{Name: "Power", Amount: 200}}
	req.Fees = []Charge{{Name: "Parking", Amount: 50}, {Name: "Parking", Amount: 30}}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)

	groups := Reconcile(res.Bills)
	require.Len(t, groups, 4)
	assert.Equal(t, "rent", groups[0].Group)
	assert.Equal(t, "utility", groups[1].Group)
	assert.Equal(t, "fee:0", groups[2].Group)
	assert.Equal(t, "fee:1", groups[3].Group)
	for _, g := range groups {
		assert.True(t, g.Balanced(), g.Group)
		assert.Equal(t, 2, g.Bills)
	}
}

func TestVerify_DetectsDrift(t *testing.T) {
	lines := []Line{
		{TenantID: 1, Category: CategoryOther, Amount: 60, TotalAmount: 100, SplitPercentage: 60, Group: "fee:0"},
		{TenantID: 2, Category: CategoryOther, Amount: 30, TotalAmount: 100, SplitPercentage: 30, Group: "fee:0"},
	}
	err := Verify(lines)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReconciliation))

	lines[1].Amount = 40
	lines[1].SplitPercentage = 40
	assert.NoError(t, Verify(lines))
}

func TestVerify_RejectsBadLines(t *testing.T) {
	zero := []Line{{Amount: 0, TotalAmount: 0, Group: "rent"}}
	assert.ErrorIs(t, Verify(zero), ErrReconciliation)

	badPct := []Line{{Amount: 10, TotalAmount: 10, SplitPercentage: 120, Group: "rent"}}
	assert.ErrorIs(t, Verify(badPct), ErrReconciliation)

	mismatch := []Line{{Amount: 10, TotalAmount: 10, SplitPercentage: 50, Group: "rent"}}
	assert.ErrorIs(t, Verify(mismatch), ErrReconciliation)
}

func TestSummarize(t *testing.T) {
	lines := []Line{
		{Category: CategoryRent, Amount: 500},
		{Category: CategoryUtility, Amount: 50.5},
		{Category: CategoryOther, Amount: 12.25},
		{Category: CategoryOther, Amount: 7.75},
	}
	s := Summarize(lines)
	assert.Equal(t, 4, s.TotalBills)
	assert.InDelta(t, 570.5, s.TotalAmount, tolerance)
	assert.InDelta(t, 500, s.RentAmount, tolerance)
	assert.InDelta(t, 50.5, s.UtilitiesAmount, tolerance)
	assert.InDelta(t, 20, s.FeesAmount, tolerance)
}
