package billing

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

var (
	testProperty = Property{ID: 7, Name: "Maple House", RentAmount: 1500}
	testDue      = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
)

func baseRequest() Request {
	return Request{
		Period:  "2025-03",
		DueDate: testDue,
	}
}

func sumBy(lines []Line, keep func(Line) bool) float64 {
	total := 0.0
	for _, l := range lines {
		if keep(l) {
			total += l.Amount
		}
	}
	return total
}

func TestGenerate_SingleTenantRentAndUtility(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 1500
	req.Utilities = []Charge{{Name: "Electricity", Amount: 200}}

	res, err := Generate(testProperty, []uint{1}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 2)

	rent, utility := res.Bills[0], res.Bills[1]
	assert.Equal(t, CategoryRent, rent.Category)
	assert.InDelta(t, 1500, rent.Amount, tolerance)
	assert.InDelta(t, 100, rent.SplitPercentage, tolerance)
	assert.Equal(t, 1500.0, rent.TotalAmount)
	assert.Equal(t, "Rent for Maple House - 2025-03", rent.Description)

	assert.Equal(t, CategoryUtility, utility.Category)
	assert.InDelta(t, 200, utility.Amount, tolerance)
	assert.InDelta(t, 100, utility.SplitPercentage, tolerance)
	assert.Equal(t, 200.0, utility.TotalAmount)
	assert.Equal(t, "Utilities for Maple House - 2025-03", utility.Description)
	assert.Contains(t, utility.Details, "Combined utilities")

	assert.Equal(t, 2, res.Summary.TotalBills)
	assert.InDelta(t, 1700, res.Summary.TotalAmount, tolerance)
	assert.InDelta(t, 1500, res.Summary.RentAmount, tolerance)
	assert.InDelta(t, 200, res.Summary.UtilitiesAmount, tolerance)
	assert.Zero(t, res.Summary.FeesAmount)
}

func TestGenerate_TwoTenantsEqualPool(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 1200
	req.Utilities = []Charge{{Name: "Water", Amount: 300}}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 4)

	wantOrder := []struct {
		tenant   uint
		category Category
		amount   float64
	}{
		{1, CategoryRent, 600},
		{1, CategoryUtility, 150},
		{2, CategoryRent, 600},
		{2, CategoryUtility, 150},
	}
	for i, w := range wantOrder {
		got := res.Bills[i]
		assert.Equal(t, w.tenant, got.TenantID, "bill %d tenant", i)
		assert.Equal(t, w.category, got.Category, "bill %d category", i)
		assert.InDelta(t, w.amount, got.Amount, tolerance, "bill %d amount", i)
		assert.InDelta(t, 50, got.SplitPercentage, tolerance, "bill %d percentage", i)
	}
	assert.InDelta(t, 1500, res.Summary.TotalAmount, tolerance)
}

func TestGenerate_FeeCustomAssignments(t *testing.T) {
	req := baseRequest()
	req.Fees = []Charge{{Name: "Parking", Amount: 100}}
	req.FeeAssignments = []FeeAssignment{{
		FeeName: "Parking",
		Assignments: []Assignment{
			{TenantID: 1, Amount: 70},
			{TenantID: 2, Amount: 30},
		},
	}}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 2)

	assert.Equal(t, CategoryOther, res.Bills[0].Category)
	assert.InDelta(t, 70, res.Bills[0].SplitPercentage, tolerance)
	assert.InDelta(t, 30, res.Bills[1].SplitPercentage, tolerance)
	assert.InDelta(t, 100, res.Summary.FeesAmount, tolerance)
	assert.Equal(t, "Parking - Maple House - 2025-03", res.Bills[0].Description)
	assert.Equal(t, "Parking", res.Bills[0].Details)
}

func TestGenerate_FeeDetailsInDescription(t *testing.T) {
	req := baseRequest()
	req.Fees = []Charge{{Name: "Cleaning", Amount: 90, Details: "Deep clean after party"}}

	res, err := Generate(testProperty, []uint{1, 2, 3}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 3)
	for _, b := range res.Bills {
		assert.InDelta(t, 30, b.Amount, tolerance)
		assert.Equal(t, "Deep clean after party", b.Details)
		assert.Contains(t, b.Description, "Cleaning")
		assert.Contains(t, b.Description, "Deep clean after party")
	}
}

func TestGenerate_PoolCustomAssignments(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 1000
	req.Utilities = []Charge{{Name: "Gas", Amount: 250}}
	req.PoolAssignments = []Assignment{
		{TenantID: 2, Amount: 500},
		{TenantID: 1, Amount: 750},
	}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 4)

	// tenant order wins over assignment order
	assert.Equal(t, uint(1), res.Bills[0].TenantID)
	assert.InDelta(t, 600, res.Bills[0].Amount, tolerance)
	assert.InDelta(t, 150, res.Bills[1].Amount, tolerance)
	assert.InDelta(t, 60, res.Bills[0].SplitPercentage, tolerance)
	assert.Equal(t, uint(2), res.Bills[2].TenantID)
	assert.InDelta(t, 400, res.Bills[2].Amount, tolerance)
	assert.InDelta(t, 100, res.Bills[3].Amount, tolerance)
	assert.InDelta(t, 40, res.Bills[3].SplitPercentage, tolerance)
}

func TestGenerate_PartialCustomAssignmentLeavesOthersUnbilled(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 900
	req.PoolAssignments = []Assignment{{TenantID: 3, Amount: 900}}

	res, err := Generate(testProperty, []uint{1, 2, 3}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)
	assert.Equal(t, uint(3), res.Bills[0].TenantID)
	assert.InDelta(t, 100, res.Bills[0].SplitPercentage, tolerance)
}

func TestGenerate_DuplicateAssignmentsAreMerged(t *testing.T) {
	req := baseRequest()
	req.Fees = []Charge{{Name: "Internet", Amount: 60}}
	req.FeeAssignments = []FeeAssignment{{
		FeeName: "Internet",
		Assignments: []Assignment{
			{TenantID: 1, Amount: 20},
			{TenantID: 1, Amount: 20},
			{TenantID: 2, Amount: 20},
			{TenantID: 99, Amount: 500},
		},
	}}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 2)
	assert.InDelta(t, 40, res.Bills[0].Amount, tolerance)
	assert.InDelta(t, 20, res.Bills[1].Amount, tolerance)
}

func TestGenerate_OnlyUtilities(t *testing.T) {
	req := baseRequest()
	req.Utilities = []Charge{{Name: "Electricity", Amount: 120}, {Name: "Water", Amount: 30}}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 2)
	for _, b := range res.Bills {
		assert.Equal(t, CategoryUtility, b.Category)
		assert.InDelta(t, 75, b.Amount, tolerance)
		assert.Equal(t, 150.0, b.TotalAmount)
		assert.Equal(t, "Combined utilities: Electricity, Water", b.Details)
	}
}

func TestGenerate_DropsUnnamedAndZeroCharges(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 100
	req.Utilities = []Charge{{Name: "", Amount: 50}, {Name: "Trash", Amount: 0}}
	req.Fees = []Charge{{Name: "Pool", Amount: 0}}

	res, err := Generate(testProperty, []uint{1}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)
	assert.Equal(t, CategoryRent, res.Bills[0].Category)
	assert.InDelta(t, 100, res.Summary.TotalAmount, tolerance)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tenants []uint
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "no tenants",
			tenants: nil,
			mutate:  func(r *Request) { r.RentAmount = 100 },
			wantErr: ErrNoTenants,
		},
		{
			name:    "all zero",
			tenants: []uint{1},
			mutate:  func(r *Request) { r.Utilities = []Charge{{Name: "Water", Amount: 0}} },
			wantErr: ErrEmptyBill,
		},
		{
			name:    "negative rent",
			tenants: []uint{1},
			mutate:  func(r *Request) { r.RentAmount = -1 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative fee",
			tenants: []uint{1},
			mutate: func(r *Request) {
				r.RentAmount = 100
				r.Fees = []Charge{{Name: "Parking", Amount: -5}}
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "infinite utility",
			tenants: []uint{1},
			mutate:  func(r *Request) { r.Utilities = []Charge{{Name: "Gas", Amount: math.Inf(1)}} },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN assignment",
			tenants: []uint{1},
			mutate: func(r *Request) {
				r.RentAmount = 100
				r.PoolAssignments = []Assignment{{TenantID: 1, Amount: math.NaN()}}
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "bad period",
			tenants: []uint{1},
			mutate: func(r *Request) {
				r.RentAmount = 100
				r.Period = "2025-13"
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name:    "missing due date",
			tenants: []uint{1},
			mutate: func(r *Request) {
				r.RentAmount = 100
				r.DueDate = time.Time{}
			},
			wantErr: ErrMissingDueDate,
		},
		{
			name:    "custom pool does not add up",
			tenants: []uint{1, 2},
			mutate: func(r *Request) {
				r.RentAmount = 1000
				r.PoolAssignments = []Assignment{{TenantID: 1, Amount: 400}}
			},
			wantErr: ErrAllocationMismatch,
		},
		{
			name:    "custom fee does not add up",
			tenants: []uint{1, 2},
			mutate: func(r *Request) {
				r.Fees = []Charge{{Name: "Parking", Amount: 100}}
				r.FeeAssignments = []FeeAssignment{{FeeName: "Parking", Assignments: []Assignment{{TenantID: 1, Amount: 70}}}}
			},
			wantErr: ErrAllocationMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			res, err := Generate(testProperty, tt.tenants, req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 1000
	req.Utilities = []Charge{{Name: "Electricity", Amount: 133.33}, {Name: "Water", Amount: 41.07}}
	req.Fees = []Charge{{Name: "Parking", Amount: 75}, {Name: "Cleaning", Amount: 20, Details: "monthly"}}

	first, err := Generate(testProperty, []uint{4, 9, 2}, req)
	require.NoError(t, err)
	second, err := Generate(testProperty, []uint{4, 9, 2}, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_SumsReconcile(t *testing.T) {
	cases := []struct {
		name      string
		tenants   []uint
		rent      float64
		utilities []Charge
		fees      []Charge
	}{
		{"thirds", []uint{1, 2, 3}, 1000, []Charge{{Name: "Power", Amount: 100}}, []Charge{{Name: "Parking", Amount: 10}}},
		{"sevenths", []uint{1, 2, 3, 4, 5, 6, 7}, 1234.56, []Charge{{Name: "Water", Amount: 78.9}, {Name: "Gas", Amount: 12.34}}, nil},
		{"fees only", []uint{5, 6}, 0, nil, []Charge{{Name: "Pest control", Amount: 99.99}, {Name: "Keys", Amount: 15}}},
		{"rent only", []uint{8}, 2500, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest()
			req.RentAmount = tc.rent
			req.Utilities = tc.utilities
			req.Fees = tc.fees

			res, err := Generate(testProperty, tc.tenants, req)
			require.NoError(t, err)

			utilitiesTotal := 0.0
			for _, u := range tc.utilities {
				utilitiesTotal += u.Amount
			}
			feesTotal := 0.0
			for _, f := range tc.fees {
				feesTotal += f.Amount
			}

			rent := sumBy(res.Bills, func(l Line) bool { return l.Category == CategoryRent })
			utilities := sumBy(res.Bills, func(l Line) bool { return l.Category == CategoryUtility })
			assert.InDelta(t, tc.rent, rent, tolerance)
			assert.InDelta(t, utilitiesTotal, utilities, tolerance)
			assert.InDelta(t, tc.rent+utilitiesTotal+feesTotal, res.Summary.TotalAmount, tolerance)

			for _, fee := range tc.fees {
				got := sumBy(res.Bills, func(l Line) bool { return l.Category == CategoryOther && l.TotalAmount == fee.Amount })
				assert.InDelta(t, fee.Amount, got, tolerance, fee.Name)
			}

			for _, b := range res.Bills {
				assert.Greater(t, b.Amount, 0.0)
				assert.InDelta(t, b.Amount, b.SplitPercentage*b.TotalAmount/100, tolerance)
				assert.Equal(t, "2025-03", b.Period)
				assert.Equal(t, testDue, b.DueDate)
				assert.Equal(t, testProperty.ID, b.PropertyID)
			}

			// equal split: every tenant carries poolTotal / N of the pool
			poolTotal := tc.rent + utilitiesTotal
			for _, id := range tc.tenants {
				id := id
				got := sumBy(res.Bills, func(l Line) bool {
					return l.TenantID == id && l.Category != CategoryOther
				})
				assert.InDelta(t, poolTotal/float64(len(tc.tenants)), got, tolerance)
			}
		})
	}
}

func TestGenerate_CustomCoveringAllTenantsSkipsEqualSplit(t *testing.T) {
	req := baseRequest()
	req.RentAmount = 300
	req.PoolAssignments = []Assignment{
		{TenantID: 1, Amount: 100},
		{TenantID: 2, Amount: 200},
	}

	res, err := Generate(testProperty, []uint{1, 2}, req)
	require.NoError(t, err)
	require.Len(t, res.Bills, 2)
	assert.InDelta(t, 100, res.Bills[0].Amount, tolerance)
	assert.InDelta(t, 200, res.Bills[1].Amount, tolerance)
	assert.NotEqual(t, res.Bills[0].Amount, res.Bills[1].Amount)
}
