package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email is a rendered message ready for the mail transport.
type Email struct {
	Subject string
	HTML    string
}

var templates = map[string]*template.Template{
	EventOrderConfirmation:    template.Must(template.New(EventOrderConfirmation).Parse(orderConfirmationHTML)),
	EventOrderDecision:        template.Must(template.New(EventOrderDecision).Parse(orderDecisionHTML)),
	EventInquiryConfirmation:  template.Must(template.New(EventInquiryConfirmation).Parse(inquiryConfirmationHTML)),
	EventInquiryStatusChanged: template.Must(template.New(EventInquiryStatusChanged).Parse(inquiryStatusChangedHTML)),
	EventInquiryResponse:      template.Must(template.New(EventInquiryResponse).Parse(inquiryResponseHTML)),
}

// Render builds the subject and HTML body for an event.
func Render(ev Event) (*Email, error) {
	tmpl, ok := templates[ev.Type]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ev.Data); err != nil {
		return nil, fmt.Errorf("execute %s template: %w", ev.Type, err)
	}

	return &Email{
		Subject: subjectFor(ev),
		HTML:    buf.String(),
	}, nil
}

func subjectFor(ev Event) string {
	switch ev.Type {
	case EventOrderConfirmation:
		return fmt.Sprintf("Order confirmation: %s", ev.Data["order_id"])
	case EventOrderDecision:
		return fmt.Sprintf("Your order has been %s", ev.Data["decision"])
	case EventInquiryConfirmation:
		return fmt.Sprintf("We received your inquiry: %s", ev.Data["title"])
	case EventInquiryStatusChanged:
		return fmt.Sprintf("Inquiry update: %s", ev.Data["title"])
	case EventInquiryResponse:
		return fmt.Sprintf("New response to your inquiry: %s", ev.Data["title"])
	default:
		return "Notification"
	}
}

const orderConfirmationHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Thank you for your order</h2>
  <p>We received your order <strong>{{.order_id}}</strong>.</p>
  <p>Total charged: <strong>${{.total}}</strong> (card ending {{.card_last_four}}).</p>
  <p>Your order is pending review. We will email you once it has been processed.</p>
</div>`

const orderDecisionHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Order {{.decision}}</h2>
  <p>Your order <strong>{{.order_id}}</strong> has been <strong>{{.decision}}</strong>.</p>
  {{if eq .decision "Rejected"}}<p>If you believe this is a mistake, reply to this email and our team will help.</p>{{end}}
</div>`

const inquiryConfirmationHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>We received your inquiry</h2>
  <p>Hi {{.name}},</p>
  <p>Your inquiry "<strong>{{.title}}</strong>" has been logged with reference <strong>{{.inquiry_id}}</strong>.</p>
  <p>Our support team will get back to you shortly.</p>
</div>`

const inquiryStatusChangedHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Inquiry status update</h2>
  <p>Hi {{.name}},</p>
  <p>The status of your inquiry "<strong>{{.title}}</strong>" changed from
  <strong>{{.old_status}}</strong> to <strong>{{.new_status}}</strong>.</p>
</div>`

const inquiryResponseHTML = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New response to your inquiry</h2>
  <p>Hi {{.name}},</p>
  <p>{{.responder}} replied to your inquiry "<strong>{{.title}}</strong>":</p>
  <blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #444;">{{.message}}</blockquote>
</div>`
