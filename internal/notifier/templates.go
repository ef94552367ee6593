package notifier

import (
	"html/template"
	"io"
	"strings"

	"letly-be-svc/internal/models"
	"letly-be-svc/internal/money"
)

type templateExecutor interface {
	Execute(w io.Writer, data interface{}) error
}

const layoutOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`
const layoutClose = `<p>Best regards,<br>Letly Team</p></div>`

var newBillTemplate = template.Must(template.New("new_bill").Parse(layoutOpen + `
<h2 style="color: #2563eb;">New Bill Notification</h2>
<p>Hello {{.Name}},</p>
<p>A new bill has been generated for your property.</p>
<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0;">Bill Details:</h3>
<p><strong>Property:</strong> {{.Property}}</p>
<p><strong>Period:</strong> {{.Period}}</p>
<p><strong>Bill Type:</strong> {{.Type}}</p>
<p><strong>Amount:</strong> {{.Amount}}</p>
<p><strong>Due Date:</strong> {{.DueDate}}</p>
</div>
<p>Please log in to your dashboard to view the full details and mark the bill as paid.</p>
` + layoutClose))

var billPaidTemplate = template.Must(template.New("bill_paid").Parse(layoutOpen + `
<h2 style="color: #059669;">Payment Confirmed</h2>
<p>Hello {{.Name}},</p>
<p>Your payment has been successfully recorded.</p>
<div style="background-color: #f0fdf4; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0;">Payment Details:</h3>
<p><strong>Property:</strong> {{.Property}}</p>
<p><strong>Bill Type:</strong> {{.Type}}</p>
<p><strong>Amount Paid:</strong> {{.Amount}}</p>
<p><strong>Date:</strong> {{.PaidAt}}</p>
</div>
<p>Thank you for your payment!</p>
` + layoutClose))

var newMaintenanceTemplate = template.Must(template.New("new_maintenance_request").Parse(layoutOpen + `
<h2 style="color: #dc2626;">New Maintenance Request</h2>
<p>Hello {{.Name}},</p>
<p>A new maintenance request has been submitted for your property.</p>
<div style="background-color: #fef2f2; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0;">Request Details:</h3>
<p><strong>Property:</strong> {{.Property}}</p>
<p><strong>Tenant:</strong> {{.Tenant}}</p>
<p><strong>Title:</strong> {{.Title}}</p>
<p><strong>Description:</strong> {{.Description}}</p>
<p><strong>Date Submitted:</strong> {{.Submitted}}</p>
</div>
<p>Please log in to your dashboard to review and respond to this request.</p>
` + layoutClose))

var maintenanceUpdateTemplate = template.Must(template.New("maintenance_update").Parse(layoutOpen + `
<h2 style="color: #2563eb;">Maintenance Request Update</h2>
<p>Hello {{.Name}},</p>
<p>Your maintenance request has been updated.</p>
<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3 style="margin-top: 0;">Update Details:</h3>
<p><strong>Property:</strong> {{.Property}}</p>
<p><strong>Request Title:</strong> {{.Title}}</p>
<p><strong>Status:</strong> <span style="color: {{.StatusColor}};">{{.Status}}</span></p>
{{if .Notes}}<p><strong>Landlord Notes:</strong> {{.Notes}}</p>{{end}}
{{if .Cost}}<p><strong>Cost:</strong> {{.Cost}}</p>{{end}}
<p><strong>Updated:</strong> {{.Updated}}</p>
</div>
<p>Please log in to your dashboard for more details.</p>
` + layoutClose))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(layoutOpen + `
<h2 style="color: #dc2626;">Password Reset Request</h2>
<p>Hello {{.Name}},</p>
<p>We received a request to reset your password for your Letly account.</p>
<div style="background-color: #fef2f2; padding: 20px; border-radius: 8px; margin: 20px 0;">
<p>Click the button below to reset your password. This link will expire in 1 hour.</p>
<div style="text-align: center; margin: 20px 0;">
<a href="{{.Link}}" style="background-color: #dc2626; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: 600;">Reset Password</a>
</div>
<p style="font-size: 14px; color: #6b7280;">If the button doesn't work, copy and paste this link into your browser:<br><a href="{{.Link}}" style="color: #dc2626;">{{.Link}}</a></p>
</div>
<p>If you didn't request this password reset, please ignore this email. Your password will remain unchanged.</p>
` + layoutClose))

func formatAmount(amount float64) string {
	return money.Format(amount)
}

func categoryLabel(category string) string {
	switch category {
	case "rent":
		return "Rent"
	case "utility":
		return "Utilities"
	case "other":
		return "Other Fees"
	}
	if category == "" {
		return "Bill"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

func statusLabel(s models.MaintenanceStatus) string {
	switch s {
	case models.MaintenancePending:
		return "Pending"
	case models.MaintenanceInProgress:
		return "In Progress"
	case models.MaintenanceResolved:
		return "Resolved"
	case models.MaintenanceRejected:
		return "Rejected"
	}
	return string(s)
}

func statusColor(s models.MaintenanceStatus) string {
	switch s {
	case models.MaintenancePending:
		return "#d97706"
	case models.MaintenanceInProgress:
		return "#2563eb"
	case models.MaintenanceResolved:
		return "#059669"
	case models.MaintenanceRejected:
		return "#dc2626"
	}
	return "#6b7280"
}
