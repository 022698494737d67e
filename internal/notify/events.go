package notify

// Event types carried on the notification queue.
const (
	EventOrderConfirmation    = "order_confirmation"
	EventOrderDecision        = "order_decision"
	EventInquiryConfirmation  = "inquiry_confirmation"
	EventInquiryStatusChanged = "inquiry_status_changed"
	EventInquiryResponse      = "inquiry_response"
)

// Event is the payload sent from the API to the notification worker.
// Data keys are event-type specific and feed the email templates.
type Event struct {
	Type string            `json:"type"`
	To   string            `json:"to"`
	Data map[string]string `json:"data,omitempty"`
}
