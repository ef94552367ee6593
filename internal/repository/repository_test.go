package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/database"
	"letly-be-svc/internal/models"
)

type fixture struct {
	db         *gorm.DB
	users      UserRepository
	properties PropertyRepository
	bills      BillRepository
	landlord   *models.User
	tenantA    *models.User
	tenantB    *models.User
	property   *models.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:         db.DB,
		users:      NewUserRepository(db.DB),
		properties: NewPropertyRepository(db.DB),
		bills:      NewBillRepository(db.DB),
	}
	ctx := context.Background()

	f.landlord = &models.User{Name: "Lana", Email: "Lana@Example.com", Password: "x", Role: models.RoleLandlord}
	f.tenantA = &models.User{Name: "Ari", Email: "ari@example.com", Password: "x", Role: models.RoleTenant}
	f.tenantB = &models.User{Name: "Bo", Email: "bo@example.com", Password: "x", Role: models.RoleTenant}
	for _, u := range []*models.User{f.landlord, f.tenantA, f.tenantB} {
		require.NoError(t, f.users.Create(ctx, u))
	}

	f.property = &models.Property{
		LandlordID: f.landlord.ID,
		Name:       "Maple House",
		RentAmount: 1200,
		Utilities:  []models.UtilityCharge{{Name: "Water", Amount: 300, SplitType: models.SplitEqual}},
	}
	require.NoError(t, f.properties.Create(ctx, f.property))
	require.NoError(t, f.properties.AddTenant(ctx, f.property, f.tenantA))
	require.NoError(t, f.properties.AddTenant(ctx, f.property, f.tenantB))
	return f
}

func (f *fixture) bill(tenant *models.User, period string, amount float64, due time.Time) *models.Bill {
	return &models.Bill{
		PropertyID:      f.property.ID,
		TenantID:        tenant.ID,
		Category:        billing.CategoryRent,
		Amount:          amount,
		TotalAmount:     amount * 2,
		SplitPercentage: 50,
		Description:     "Rent",
		DueDate:         due,
		Period:          period,
	}
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.GetByEmail(ctx, "LANA@example.COM")
	require.NoError(t, err)
	assert.Equal(t, f.landlord.ID, u.ID)
	assert.Equal(t, "lana@example.com", u.Email)
	assert.NotEmpty(t, u.DocumentID)

	exists, err := f.users.ExistsByEmail(ctx, " ari@EXAMPLE.com ")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, f.users.UpdatePassword(ctx, u.ID, "new-hash"))
	err = f.users.UpdatePassword(ctx, 9999, "new-hash")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestPropertyRepository_TenantsAndUtilities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.properties.GetByID(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.tenantA.ID, f.tenantB.ID}, p.TenantIDs())
	require.Len(t, p.Utilities, 1)
	assert.Equal(t, "Water", p.Utilities[0].Name)
	require.NotNil(t, p.Landlord)
	assert.Equal(t, "Lana", p.Landlord.Name)

	rented, err := f.properties.ListByTenant(ctx, f.tenantB.ID)
	require.NoError(t, err)
	require.Len(t, rented, 1)
	assert.Equal(t, f.property.ID, rented[0].ID)

	require.NoError(t, f.properties.RemoveTenant(ctx, p, f.tenantB))
	rented, err = f.properties.ListByTenant(ctx, f.tenantB.ID)
	require.NoError(t, err)
	assert.Empty(t, rented)

	p.Name = "Maple Cottage"
	p.RentAmount = 0
	require.NoError(t, f.properties.Update(ctx, p))
	owned, err := f.properties.ListByLandlord(ctx, f.landlord.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Maple Cottage", owned[0].Name)
	assert.Zero(t, owned[0].RentAmount)
	assert.Len(t, owned[0].Tenants, 1)
}

func TestBillRepository_ReplacePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := []*models.Bill{f.bill(f.tenantA, "2025-03", 600, due), f.bill(f.tenantB, "2025-03", 600, due)}
	deleted, err := f.bills.ReplacePeriod(ctx, f.property.ID, "2025-03", first)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	other := []*models.Bill{f.bill(f.tenantA, "2025-04", 600, due.AddDate(0, 1, 0))}
	_, err = f.bills.ReplacePeriod(ctx, f.property.ID, "2025-04", other)
	require.NoError(t, err)

	second := []*models.Bill{f.bill(f.tenantA, "2025-03", 700, due), f.bill(f.tenantB, "2025-03", 500, due)}
	deleted, err = f.bills.ReplacePeriod(ctx, f.property.ID, "2025-03", second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	current, err := f.bills.ListByPropertyPeriod(ctx, f.property.ID, "2025-03")
	require.NoError(t, err)
	require.Len(t, current, 2)
	assert.Equal(t, 700.0, current[0].Amount)
	assert.Equal(t, billing.StatusPending, current[0].Status)

	april, err := f.bills.ListByPropertyPeriod(ctx, f.property.ID, "2025-04")
	require.NoError(t, err)
	assert.Len(t, april, 1)
}

func TestBillRepository_MarkPaidOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.bills.ReplacePeriod(ctx, f.property.ID, "2025-03", []*models.Bill{f.bill(f.tenantA, "2025-03", 600, due)})
	require.NoError(t, err)
	list, err := f.bills.ListByTenant(ctx, f.tenantA.ID, BillFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	paidAt := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	changed, err := f.bills.MarkPaid(ctx, id, paidAt)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.bills.MarkPaid(ctx, id, paidAt.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)

	bill, err := f.bills.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, bill.Status)
	require.NotNil(t, bill.PaidAt)
	assert.True(t, bill.PaidAt.Equal(paidAt))
	require.NotNil(t, bill.Property)
	assert.Equal(t, "Maple House", bill.Property.Name)
}

func TestBillRepository_ListFiltersAndOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)

	_, err := f.bills.ReplacePeriod(ctx, f.property.ID, "2025-03", []*models.Bill{
		f.bill(f.tenantA, "2025-03", 600, march),
		f.bill(f.tenantB, "2025-03", 600, march),
	})
	require.NoError(t, err)
	_, err = f.bills.ReplacePeriod(ctx, f.property.ID, "2025-04", []*models.Bill{
		f.bill(f.tenantA, "2025-04", 650, april),
	})
	require.NoError(t, err)

	all, err := f.bills.ListByLandlord(ctx, f.landlord.ID, BillFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, !all[0].DueDate.After(all[2].DueDate))

	march1, err := f.bills.ListByLandlord(ctx, f.landlord.ID, BillFilter{Period: "2025-03", PropertyID: f.property.ID})
	require.NoError(t, err)
	assert.Len(t, march1, 2)

	none, err := f.bills.ListByLandlord(ctx, f.tenantA.ID, BillFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)

	page2, err := f.bills.ListByLandlord(ctx, f.landlord.ID, BillFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, all[2].ID, page2[0].ID)
	total, err := f.bills.CountByLandlord(ctx, f.landlord.ID, BillFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	tenantTotal, err := f.bills.CountByTenant(ctx, f.tenantA.ID, BillFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), tenantTotal)

	tenantA, err := f.bills.ListByTenant(ctx, f.tenantA.ID, BillFilter{Period: "2025-04"})
	require.NoError(t, err)
	require.Len(t, tenantA, 1)
	assert.Equal(t, 650.0, tenantA[0].Amount)

	marked, err := f.bills.MarkOverdue(ctx, march.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	overdue, err := f.bills.ListByLandlord(ctx, f.landlord.ID, BillFilter{Status: billing.StatusOverdue})
	require.NoError(t, err)
	assert.Len(t, overdue, 2)

	changed, err := f.bills.MarkPaid(ctx, overdue[0].ID, time.Now())
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestPasswordResetRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewPasswordResetRepository(f.db)
	now := time.Now()

	old := &models.PasswordResetToken{Email: "ari@example.com", TokenHash: "old", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Replace(ctx, old))
	fresh := &models.PasswordResetToken{Email: "ari@example.com", TokenHash: "fresh", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Replace(ctx, fresh))

	_, err := repo.FindUsable(ctx, "ari@example.com", "old", now)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	token, err := repo.FindUsable(ctx, "ari@example.com", "fresh", now)
	require.NoError(t, err)

	_, err = repo.FindUsable(ctx, "ari@example.com", "fresh", now.Add(2*time.Hour))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	used, err := repo.MarkUsed(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, used)
	used, err = repo.MarkUsed(ctx, token.ID)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestMaintenanceRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewMaintenanceRepository(f.db)

	req := &models.MaintenanceRequest{PropertyID: f.property.ID, TenantID: f.tenantA.ID, Title: "Leak", Description: "Kitchen tap"}
	require.NoError(t, repo.Create(ctx, req))
	assert.Equal(t, models.MaintenancePending, req.Status)

	forLandlord, err := repo.ListByLandlord(ctx, f.landlord.ID)
	require.NoError(t, err)
	require.Len(t, forLandlord, 1)
	require.NotNil(t, forLandlord[0].Tenant)
	assert.Equal(t, "Ari", forLandlord[0].Tenant.Name)

	cost := 80.0
	req.Status = models.MaintenanceResolved
	req.LandlordNotes = "Fixed"
	req.CostAmount = &cost
	require.NoError(t, repo.UpdateStatus(ctx, req))

	got, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaintenanceResolved, got.Status)
	assert.Equal(t, "Fixed", got.LandlordNotes)
	require.NotNil(t, got.CostAmount)
	assert.Equal(t, 80.0, *got.CostAmount)

	byTenant, err := repo.ListByTenant(ctx, f.tenantB.ID)
	require.NoError(t, err)
	assert.Empty(t, byTenant)

	byProperty, err := repo.ListByProperty(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Len(t, byProperty, 1)
}

func TestLogSchedulerRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewLogSchedulerRepository(f.db)

	doc := "run-1"
	for _, status := range []string{models.SchedulerStart, models.SchedulerSuccess} {
		s := status
		require.NoError(t, repo.CreateLogScheduler(ctx, &models.LogSchedullers{DocumentID: &doc, StatusScheduller: &s}))
	}
	logs, err := repo.ListByDocumentID(ctx, doc)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.SchedulerSuccess, *logs[1].StatusScheduller)
}
