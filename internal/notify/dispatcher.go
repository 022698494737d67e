package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/commerceflow/backend/internal/aws"
)

// Publisher is the side of the dispatcher the lifecycle services depend on.
// Implementations must be safe to call best-effort: callers log the returned
// error and never let it change the outcome of the triggering operation.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Dispatcher publishes notification events to the queue consumed by the
// notification worker. Delivery (rendering + SES send + retry) happens there,
// so a slow or failing mail path never blocks an HTTP response.
type Dispatcher struct {
	publisher *aws.Publisher
}

// NewDispatcher returns a Dispatcher writing to the given queue.
func NewDispatcher(sqsClient aws.SQSAPI, queueURL string) *Dispatcher {
	return &Dispatcher{publisher: aws.NewPublisher(sqsClient, queueURL)}
}

// Publish marshals the event and sends it to the queue.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	attrs := map[string]string{
		"event_type": ev.Type,
		"recipient":  ev.To,
	}
	if err := d.publisher.Send(ctx, string(body), attrs); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}
	return nil
}
