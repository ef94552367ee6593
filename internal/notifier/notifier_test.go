package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/models"
	"letly-be-svc/pkg/logger"
)

func TestMailer_NewBill(t *testing.T) {
	rec := NewRecorder()
	m := NewMailer(rec, logger.NewNopLogger())

	tenant := &models.User{Name: "Tina", Email: "tina@example.com"}
	bill := &models.Bill{
		Category: billing.CategoryRent,
		Amount:   600,
		DueDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Period:   "2025-03",
	}
	m.NewBill(tenant, "Maple <House>", bill)
	m.Wait()

	msgs := rec.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "tina@example.com", msgs[0].To)
	assert.Equal(t, "New Bill Generated - Rent", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "$600.00")
	assert.Contains(t, msgs[0].HTML, "Mar 1, 2025")
	assert.Contains(t, msgs[0].HTML, "Maple &lt;House&gt;")
}

func TestMailer_MaintenanceUpdateOptionalFields(t *testing.T) {
	rec := NewRecorder()
	m := NewMailer(rec, logger.NewNopLogger())
	tenant := &models.User{Name: "Tina", Email: "tina@example.com"}

	cost := 120.5
	m.MaintenanceUpdate(tenant, "Maple House", &models.MaintenanceRequest{
		Title:         "Leaky tap",
		Status:        models.MaintenanceResolved,
		LandlordNotes: "Washer replaced",
		CostAmount:    &cost,
	})
	m.MaintenanceUpdate(tenant, "Maple House", &models.MaintenanceRequest{
		Title:  "Broken heater",
		Status: models.MaintenanceInProgress,
	})
	m.Wait()

	msgs := rec.Messages()
	require.Len(t, msgs, 2)
	bySubject := map[string]string{}
	for _, msg := range msgs {
		bySubject[msg.Subject] = msg.HTML
	}
	resolved := bySubject["Maintenance Request Update - Leaky tap"]
	assert.Contains(t, resolved, "Resolved")
	assert.Contains(t, resolved, "Washer replaced")
	assert.Contains(t, resolved, "$120.50")

	inProgress := bySubject["Maintenance Request Update - Broken heater"]
	assert.Contains(t, inProgress, "In Progress")
	assert.NotContains(t, inProgress, "Landlord Notes")
	assert.NotContains(t, inProgress, "Cost:")
}

func TestMailer_SendFailureIsSwallowed(t *testing.T) {
	rec := NewRecorder()
	rec.FailWith(errors.New("smtp down"))
	m := NewMailer(rec, logger.NewNopLogger())

	m.PasswordReset(&models.User{Name: "Lee", Email: "lee@example.com"}, "http://localhost/reset?token=abc")
	m.PasswordReset(&models.User{Name: "No Mail"}, "http://localhost/reset?token=def")
	m.Wait()

	assert.Empty(t, rec.Messages())
}
