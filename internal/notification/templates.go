package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"growthmarket/internal/domain/model"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "order_placed_client"}}<p>Hi {{.ClientName}},</p>
<p>Thank you for your order of <b>{{.RequiredFollowers}} {{.Service}}</b> on {{.Platform}}.</p>
<p>Order ID: {{.ID}}<br>Amount due: {{.Price.StringFixed 2}}<br>Status: {{.Status}}</p>
<p>Please submit your payment details to start processing.</p>{{end}}

{{define "order_placed_admin"}}<p>New order received.</p>
<p>Order ID: {{.ID}}<br>Client: {{.ClientName}} &lt;{{.ClientEmail}}&gt; {{.ClientPhone}}<br>
Service: {{.RequiredFollowers}} {{.Service}} on {{.Platform}}<br>Profile: {{.ProfileLink}}<br>
Price: {{.Price.StringFixed 2}}</p>{{end}}

{{define "payment_received_client"}}<p>Hi {{.ClientName}},</p>
<p>We have received your payment details for order {{.OrderID}}.</p>
<p>Method: {{.PaymentMethod}}<br>Transaction ID: {{.TransactionID}}<br>Amount: {{.Amount.StringFixed 2}}</p>
<p>Our team will review it shortly.</p>{{end}}

{{define "payment_submitted_admin"}}<p>A payment is waiting for review.</p>
<p>Payment ID: {{.ID}}<br>Order ID: {{.OrderID}}<br>Client: {{.ClientName}} &lt;{{.ClientEmail}}&gt;<br>
Method: {{.PaymentMethod}}<br>Transaction ID: {{.TransactionID}}<br>Amount: {{.Amount.StringFixed 2}}
{{if .ScreenshotURL}}<br>Screenshot: <a href="{{.ScreenshotURL}}">{{.ScreenshotURL}}</a>{{end}}</p>{{end}}

{{define "payment_reviewed_client"}}<p>Hi {{.ClientName}},</p>
<p>Your payment for order {{.OrderID}} has been <b>{{.Status}}</b>.</p>
<p>Transaction ID: {{.TransactionID}}<br>Remarks: {{.Remarks}}</p>{{end}}

{{define "payment_reviewed_admin"}}<p>Payment {{.ID}} for order {{.OrderID}} was marked <b>{{.Status}}</b>.</p>
<p>Client: {{.ClientName}} &lt;{{.ClientEmail}}&gt;<br>Amount: {{.Amount.StringFixed 2}}<br>Remarks: {{.Remarks}}</p>{{end}}

{{define "refund_requested_client"}}<p>Hi {{.ClientName}},</p>
<p>We have received your refund request for order {{.OrderID}}.</p>
<p>Amount: {{.Amount.StringFixed 2}}<br>Reason: {{.Reason}}</p>{{end}}

{{define "refund_requested_admin"}}<p>A refund request is waiting for review.</p>
<p>Refund ID: {{.ID}}<br>Order ID: {{.OrderID}}<br>Client: {{.ClientName}} &lt;{{.ClientEmail}}&gt;<br>
Amount: {{.Amount.StringFixed 2}}<br>Reason: {{.Reason}}</p>{{end}}

{{define "refund_approved_client"}}<p>Hi {{.ClientName}},</p>
<p>Your refund request for order {{.OrderID}} has been <b>approved</b>.
The amount of {{.Amount.StringFixed 2}} will be returned to you.</p>
{{if .AdminRemarks}}<p>Remarks: {{.AdminRemarks}}</p>{{end}}{{end}}

{{define "refund_rejected_client"}}<p>Hi {{.ClientName}},</p>
<p>Your refund request for order {{.OrderID}} has been <b>rejected</b>.</p>
{{if .AdminRemarks}}<p>Remarks: {{.AdminRemarks}}</p>{{end}}{{end}}
`))

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTMLEscapeString(fmt.Sprintf("%s: %v", name, err))
	}
	return buf.String()
}

func OrderPlacedClient(o model.Order) Message {
	return Message{
		To:       o.ClientEmail,
		Subject:  "Order received: " + o.ID,
		HTMLBody: render("order_placed_client", o),
	}
}

func OrderPlacedAdmin(admin string, o model.Order) Message {
	return Message{
		To:       admin,
		Subject:  fmt.Sprintf("New order %s from %s", o.ID, o.ClientName),
		HTMLBody: render("order_placed_admin", o),
	}
}

func PaymentReceivedClient(p model.Payment) Message {
	return Message{
		To:       p.ClientEmail,
		Subject:  "Payment received for order " + p.OrderID,
		HTMLBody: render("payment_received_client", p),
	}
}

func PaymentSubmittedAdmin(admin string, p model.Payment) Message {
	return Message{
		To:       admin,
		Subject:  fmt.Sprintf("New payment %s (%s) awaiting review", p.TransactionID, p.PaymentMethod),
		HTMLBody: render("payment_submitted_admin", p),
	}
}

func PaymentReviewedClient(p model.Payment) Message {
	return Message{
		To:       p.ClientEmail,
		Subject:  fmt.Sprintf("Your payment has been %s", p.Status),
		HTMLBody: render("payment_reviewed_client", p),
	}
}

func PaymentReviewedAdmin(admin string, p model.Payment) Message {
	return Message{
		To:       admin,
		Subject:  fmt.Sprintf("Payment %s %s", p.TransactionID, p.Status),
		HTMLBody: render("payment_reviewed_admin", p),
	}
}

func RefundRequestedClient(r model.Refund) Message {
	return Message{
		To:       r.ClientEmail,
		Subject:  "Refund request received for order " + r.OrderID,
		HTMLBody: render("refund_requested_client", r),
	}
}

func RefundRequestedAdmin(admin string, r model.Refund) Message {
	return Message{
		To:       admin,
		Subject:  "New refund request for order " + r.OrderID,
		HTMLBody: render("refund_requested_admin", r),
	}
}

// 承認/却下で文面を分ける
func RefundReviewedClient(r model.Refund) Message {
	if r.Status == model.ReviewStatusApproved {
		return Message{
			To:       r.ClientEmail,
			Subject:  "Your refund has been approved",
			HTMLBody: render("refund_approved_client", r),
		}
	}
	return Message{
		To:       r.ClientEmail,
		Subject:  "Your refund request has been rejected",
		HTMLBody: render("refund_rejected_client", r),
	}
}
