// Package notifier sends templated mail for bill and maintenance events.
// Delivery never blocks or fails the operation that triggered it.
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"letly-be-svc/internal/models"
	"letly-be-svc/pkg/logger"
)

// Message is one rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier is what services call on domain events.
type Notifier interface {
	NewBill(tenant *models.User, propertyName string, bill *models.Bill)
	BillPaid(tenant *models.User, propertyName string, bill *models.Bill)
	NewMaintenanceRequest(landlord, tenant *models.User, propertyName string, req *models.MaintenanceRequest)
	MaintenanceUpdate(tenant *models.User, propertyName string, req *models.MaintenanceRequest)
	PasswordReset(user *models.User, resetLink string)
}

// Mailer renders messages and hands them to a Sender in the background.
type Mailer struct {
	sender  Sender
	logger  *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewMailer creates a notifier that delivers through sender.
func NewMailer(sender Sender, logger *logger.Logger) *Mailer {
	return &Mailer{
		sender:  sender,
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Wait blocks until every queued message has been attempted.
func (m *Mailer) Wait() {
	m.wg.Wait()
}

func (m *Mailer) NewBill(tenant *models.User, propertyName string, bill *models.Bill) {
	m.dispatch(tenant, "new_bill", fmt.Sprintf("New Bill Generated - %s", categoryLabel(string(bill.Category))), newBillTemplate, map[string]interface{}{
		"Name":     tenant.Name,
		"Property": propertyName,
		"Type":     categoryLabel(string(bill.Category)),
		"Amount":   formatAmount(bill.Amount),
		"DueDate":  bill.DueDate.Format("Jan 2, 2006"),
		"Period":   bill.Period,
	})
}

func (m *Mailer) BillPaid(tenant *models.User, propertyName string, bill *models.Bill) {
	paidAt := time.Now()
	if bill.PaidAt != nil {
		paidAt = *bill.PaidAt
	}
	m.dispatch(tenant, "bill_paid", fmt.Sprintf("Payment Confirmed - %s", categoryLabel(string(bill.Category))), billPaidTemplate, map[string]interface{}{
		"Name":     tenant.Name,
		"Property": propertyName,
		"Type":     categoryLabel(string(bill.Category)),
		"Amount":   formatAmount(bill.Amount),
		"PaidAt":   paidAt.Format("Jan 2, 2006"),
	})
}

func (m *Mailer) NewMaintenanceRequest(landlord, tenant *models.User, propertyName string, req *models.MaintenanceRequest) {
	m.dispatch(landlord, "new_maintenance_request", fmt.Sprintf("New Maintenance Request - %s", propertyName), newMaintenanceTemplate, map[string]interface{}{
		"Name":        landlord.Name,
		"Property":    propertyName,
		"Tenant":      tenant.Name,
		"Title":       req.Title,
		"Description": req.Description,
		"Submitted":   req.CreatedAt.Format("Jan 2, 2006"),
	})
}

func (m *Mailer) MaintenanceUpdate(tenant *models.User, propertyName string, req *models.MaintenanceRequest) {
	data := map[string]interface{}{
		"Name":        tenant.Name,
		"Property":    propertyName,
		"Title":       req.Title,
		"Status":      statusLabel(req.Status),
		"StatusColor": statusColor(req.Status),
		"Notes":       req.LandlordNotes,
		"Updated":     req.UpdatedAt.Format("Jan 2, 2006"),
	}
	if req.CostAmount != nil && *req.CostAmount > 0 {
		data["Cost"] = formatAmount(*req.CostAmount)
	}
	m.dispatch(tenant, "maintenance_update", fmt.Sprintf("Maintenance Request Update - %s", req.Title), maintenanceUpdateTemplate, data)
}

func (m *Mailer) PasswordReset(user *models.User, resetLink string) {
	m.dispatch(user, "password_reset", "Password Reset Request - Letly", passwordResetTemplate, map[string]interface{}{
		"Name": user.Name,
		"Link": resetLink,
	})
}

func (m *Mailer) dispatch(to *models.User, event, subject string, tmpl templateExecutor, data map[string]interface{}) {
	entry := m.logger.WithFields(map[string]interface{}{
		"event": event,
		"to":    to.Email,
	})
	if to.Email == "" {
		entry.Warn("Skipping notification, recipient has no email")
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		entry.WithError(err).Error("Failed to render notification")
		return
	}
	msg := Message{To: to.Email, Subject: subject, HTML: body.String()}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		if err := m.sender.Send(ctx, msg); err != nil {
			entry.WithError(err).Error("Failed to send notification")
			return
		}
		entry.Debug("Notification sent")
	}()
}

// Nop drops every notification.
type Nop struct{}

func (Nop) NewBill(*models.User, string, *models.Bill)  {}
func (Nop) BillPaid(*models.User, string, *models.Bill) {}
func (Nop) NewMaintenanceRequest(*models.User, *models.User, string, *models.MaintenanceRequest) {
}
func (Nop) MaintenanceUpdate(*models.User, string, *models.MaintenanceRequest) {}
func (Nop) PasswordReset(*models.User, string)                                 {}
