package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/lock"
	"letly-be-svc/internal/metrics"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/models/response"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

// GenerateInput is a bill generation request for one property and period.
// Nil RentAmount and nil Utilities fall back to what is stored on the property,
// an empty Utilities slice means no utilities this period.
type GenerateInput struct {
	PropertyID      uint
	Period          string
	DueDate         *time.Time
	RentAmount      *float64
	Utilities       []billing.Charge
	Fees            []billing.Charge
	PoolAssignments []billing.Assignment
	FeeAssignments  []billing.FeeAssignment
}

// BillService interface defines bill generation, payment and reporting methods
type BillService interface {
	Generate(ctx context.Context, actor auth.Actor, input GenerateInput) (*response.GenerateBillsResponse, error)
	ListBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) ([]*models.Bill, error)
	CountBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) (int64, error)
	GetBill(ctx context.Context, actor auth.Actor, id uint) (*models.Bill, error)
	MarkPaid(ctx context.Context, actor auth.Actor, id uint) (*models.Bill, error)
	TenantSummary(ctx context.Context, actor auth.Actor, period string) (*response.BillSummaryResponse, error)
	LandlordSummary(ctx context.Context, actor auth.Actor, period string) (*response.LandlordBillSummaryResponse, error)
	ExportLandlordBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) ([]byte, string, error)
	SweepOverdue(ctx context.Context) (int64, error)
}

// billService implements BillService interface
type billService struct {
	billRepo     repository.BillRepository
	propertyRepo repository.PropertyRepository
	locker       lock.Locker
	notifier     notifier.Notifier
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	propertyRepo repository.PropertyRepository,
	locker lock.Locker,
	notifier notifier.Notifier,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) BillService {
	return &billService{
		billRepo:     billRepo,
		propertyRepo: propertyRepo,
		locker:       locker,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Generate replaces the property's bills for the period with a freshly
// allocated set and notifies every tenant who received a bill.
func (s *billService) Generate(ctx context.Context, actor auth.Actor, input GenerateInput) (*response.GenerateBillsResponse, error) {
	start := s.now()
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, err
	}
	if _, err := billing.ParsePeriod(input.Period); err != nil {
		s.metrics.GenerationErrors.WithLabelValues("validation").Inc()
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, lookupErr(err, "property", input.PropertyID)
	}
	if property.LandlordID != actor.ID {
		return nil, ErrNotAuthorized
	}

	release, err := s.locker.Obtain(ctx, lock.BillingKey(property.ID, input.Period))
	if err != nil {
		s.metrics.GenerationErrors.WithLabelValues("lock").Inc()
		return nil, fmt.Errorf("%w: bills for this period are being generated", ErrConflict)
	}
	defer release()

	req, err := s.request(property, input)
	if err != nil {
		return nil, err
	}

	result, err := billing.Generate(
		billing.Property{ID: property.ID, Name: property.Name, RentAmount: property.RentAmount},
		property.TenantIDs(),
		req,
	)
	if err != nil {
		s.metrics.GenerationErrors.WithLabelValues("validation").Inc()
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"property_id": property.ID,
			"period":      input.Period,
		}).Warn("Bill generation rejected")
		return nil, err
	}

	bills := make([]*models.Bill, len(result.Bills))
	for i, line := range result.Bills {
		bills[i] = models.NewBillFromLine(line)
	}

	replaced, err := s.billRepo.ReplacePeriod(ctx, property.ID, input.Period, bills)
	if err != nil {
		s.metrics.GenerationErrors.WithLabelValues("store").Inc()
		s.logger.WithError(err).WithField("property_id", property.ID).Error("Failed to save bills")
		return nil, fmt.Errorf("failed to save bills: %w", err)
	}

	for _, b := range bills {
		s.metrics.BillsGenerated.WithLabelValues(string(b.Category)).Inc()
		s.metrics.AmountBilled.WithLabelValues(string(b.Category)).Add(b.Amount)
	}
	s.metrics.GenerationTime.Observe(s.now().Sub(start).Seconds())

	s.logger.WithFields(map[string]interface{}{
		"property_id": property.ID,
		"period":      input.Period,
		"bills":       len(bills),
		"replaced":    replaced,
		"total":       result.Summary.TotalAmount,
	}).Info("Bills generated successfully")

	tenants := make(map[uint]*models.User, len(property.Tenants))
	for i := range property.Tenants {
		tenants[property.Tenants[i].ID] = &property.Tenants[i]
	}
	for _, b := range bills {
		if tenant, ok := tenants[b.TenantID]; ok {
			s.notifier.NewBill(tenant, property.Name, b)
		}
	}

	return &response.GenerateBillsResponse{
		PropertyID: property.ID,
		Period:     input.Period,
		Bills:      bills,
		Summary:    result.Summary,
	}, nil
}

// request fills in defaults from the stored property
func (s *billService) request(property *models.Property, input GenerateInput) (billing.Request, error) {
	req := billing.Request{
		Period:          input.Period,
		RentAmount:      property.RentAmount,
		Utilities:       input.Utilities,
		Fees:            input.Fees,
		PoolAssignments: input.PoolAssignments,
		FeeAssignments:  input.FeeAssignments,
	}
	if input.RentAmount != nil {
		req.RentAmount = *input.RentAmount
	}
	if input.Utilities == nil {
		req.Utilities = make([]billing.Charge, 0, len(property.Utilities))
		for _, u := range property.Utilities {
			req.Utilities = append(req.Utilities, billing.Charge{Name: u.Name, Amount: u.Amount})
		}
	}
	if input.DueDate != nil {
		req.DueDate = *input.DueDate
	} else {
		due, err := billing.DefaultDueDate(input.Period)
		if err != nil {
			return billing.Request{}, err
		}
		req.DueDate = due
	}
	return req, nil
}

// ListBills returns the tenant's own bills or every bill on the landlord's properties
func (s *billService) ListBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) ([]*models.Bill, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}

	var (
		bills []*models.Bill
		err   error
	)
	switch actor.Role {
	case models.RoleLandlord:
		bills, err = s.billRepo.ListByLandlord(ctx, actor.ID, filter)
	case models.RoleTenant:
		bills, err = s.billRepo.ListByTenant(ctx, actor.ID, filter)
	default:
		return nil, auth.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// CountBills counts the bills ListBills would return without paging
func (s *billService) CountBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) (int64, error) {
	if err := checkFilter(filter); err != nil {
		return 0, err
	}

	var (
		total int64
		err   error
	)
	switch actor.Role {
	case models.RoleLandlord:
		total, err = s.billRepo.CountByLandlord(ctx, actor.ID, filter)
	case models.RoleTenant:
		total, err = s.billRepo.CountByTenant(ctx, actor.ID, filter)
	default:
		return 0, auth.ErrForbidden
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return total, nil
}

func checkFilter(filter repository.BillFilter) error {
	if filter.Period != "" && !billing.ValidPeriod(filter.Period) {
		return invalidInput("period must be formatted as YYYY-MM")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return invalidInput("unknown status %q", filter.Status)
	}
	if filter.Page < 0 || filter.Limit < 0 {
		return invalidInput("page and limit must not be negative")
	}
	return nil
}

// GetBill returns a bill visible to its tenant or the property's landlord
func (s *billService) GetBill(ctx context.Context, actor auth.Actor, id uint) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "bill", id)
	}
	if err := canAccessBill(actor, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// MarkPaid moves a bill to paid. Paying a bill that is already paid returns
// it unchanged and sends nothing.
func (s *billService) MarkPaid(ctx context.Context, actor auth.Actor, id uint) (*models.Bill, error) {
	bill, err := s.GetBill(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !bill.Status.Payable() {
		return bill, nil
	}

	paidAt := s.now()
	updated, err := s.billRepo.MarkPaid(ctx, bill.ID, paidAt)
	if err != nil {
		s.logger.WithError(err).WithField("bill_id", id).Error("Failed to mark bill paid")
		return nil, fmt.Errorf("failed to mark bill paid: %w", err)
	}

	bill, err = s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "bill", id)
	}
	if !updated {
		// someone else paid it between the read and the update
		return bill, nil
	}

	s.metrics.BillsPaid.Inc()
	s.logger.WithFields(map[string]interface{}{
		"bill_id":  bill.ID,
		"actor_id": actor.ID,
		"role":     actor.Role,
	}).Info("Bill marked as paid")

	if bill.Tenant != nil {
		propertyName := ""
		if bill.Property != nil {
			propertyName = bill.Property.Name
		}
		s.notifier.BillPaid(bill.Tenant, propertyName, bill)
	}
	return bill, nil
}

// TenantSummary totals the tenant's bills by status
func (s *billService) TenantSummary(ctx context.Context, actor auth.Actor, period string) (*response.BillSummaryResponse, error) {
	if err := actor.Require(models.RoleTenant); err != nil {
		return nil, err
	}
	bills, err := s.ListBills(ctx, actor, repository.BillFilter{Period: period})
	if err != nil {
		return nil, err
	}

	summary := &response.BillSummaryResponse{Period: period}
	for _, b := range bills {
		summary.Add(b.Status, b.Amount)
	}
	return summary, nil
}

// LandlordSummary totals bills by status overall and per property. Properties
// without bills are listed with zero counts.
func (s *billService) LandlordSummary(ctx context.Context, actor auth.Actor, period string) (*response.LandlordBillSummaryResponse, error) {
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, err
	}
	properties, err := s.propertyRepo.ListByLandlord(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	bills, err := s.ListBills(ctx, actor, repository.BillFilter{Period: period})
	if err != nil {
		return nil, err
	}

	summary := &response.LandlordBillSummaryResponse{
		Period:     period,
		Properties: make([]response.PropertyBillSummary, len(properties)),
	}
	index := make(map[uint]int, len(properties))
	for i, p := range properties {
		index[p.ID] = i
		summary.Properties[i] = response.PropertyBillSummary{PropertyID: p.ID, PropertyName: p.Name}
	}
	for _, b := range bills {
		summary.Overall.Add(b.Status, b.Amount)
		if i, ok := index[b.PropertyID]; ok {
			summary.Properties[i].Add(b.Status, b.Amount)
		}
	}
	return summary, nil
}

// ExportLandlordBills writes the landlord's bills to an Excel workbook
func (s *billService) ExportLandlordBills(ctx context.Context, actor auth.Actor, filter repository.BillFilter) ([]byte, string, error) {
	if err := actor.Require(models.RoleLandlord); err != nil {
		return nil, "", err
	}
	filter.Page, filter.Limit = 0, 0
	bills, err := s.ListBills(ctx, actor, filter)
	if err != nil {
		return nil, "", err
	}

	rows := make([]response.BillExportRow, len(bills))
	for i, b := range bills {
		rows[i] = exportRow(b)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close Excel file")
		}
	}()

	sheetName := "Bills"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Bill ID", "Property", "Tenant", "Tenant Email", "Period", "Category", "Description", "Amount", "Split %", "Due Date", "Status", "Paid At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)
	}

	for i, r := range rows {
		row := i + 2
		paidAt := ""
		if r.PaidAt != nil {
			paidAt = r.PaidAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			i + 1, r.BillID, r.PropertyName, r.TenantName, r.TenantEmail, r.Period,
			r.Category, r.Description, r.Amount, r.SplitPercent, r.DueDate.Format("2006-01-02"), r.Status, paidAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("bills_export_%s.xlsx", s.now().Format("20060102_150405"))

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"landlord_id": actor.ID,
		"rows":        len(rows),
	}).Info("Bills exported successfully")

	return buffer.Bytes(), filename, nil
}

// SweepOverdue marks every pending bill past its due date as overdue
func (s *billService) SweepOverdue(ctx context.Context) (int64, error) {
	marked, err := s.billRepo.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue bills: %w", err)
	}
	s.metrics.OverdueMarked.Add(float64(marked))
	s.logger.WithField("marked", marked).Info("Overdue sweep finished")
	return marked, nil
}

// canAccessBill allows the bill's tenant and the landlord of its property
func canAccessBill(actor auth.Actor, bill *models.Bill) error {
	switch actor.Role {
	case models.RoleTenant:
		if bill.TenantID == actor.ID {
			return nil
		}
	case models.RoleLandlord:
		if bill.Property != nil && bill.Property.LandlordID == actor.ID {
			return nil
		}
	default:
		return auth.ErrForbidden
	}
	return ErrNotAuthorized
}

func exportRow(b *models.Bill) response.BillExportRow {
	row := response.BillExportRow{
		BillID:       b.ID,
		Period:       b.Period,
		Category:     string(b.Category),
		Description:  b.Description,
		Amount:       b.Amount,
		SplitPercent: b.SplitPercentage,
		DueDate:      b.DueDate,
		Status:       string(b.Status),
		PaidAt:       b.PaidAt,
	}
	if b.Property != nil {
		row.PropertyName = b.Property.Name
	}
	if b.Tenant != nil {
		row.TenantName = b.Tenant.Name
		row.TenantEmail = b.Tenant.Email
	}
	return row
}

