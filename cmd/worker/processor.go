package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"

	"github.com/commerceflow/backend/internal/aws"
	"github.com/commerceflow/backend/internal/notify"
)

// Processor consumes notification events from the queue, renders them, and
// delivers them over SES. Returning an error makes the queue redeliver, so
// transient mail failures retry until the queue's DLQ policy gives up.
type Processor struct {
	ses     aws.SESAPI
	metrics *aws.Metrics
	sender  string
	log     *logrus.Logger
}

// NewProcessor creates a worker processor with clients injected.
func NewProcessor(ses aws.SESAPI, metrics *aws.Metrics, sender string, log *logrus.Logger) *Processor {
	return &Processor{
		ses:     ses,
		metrics: metrics,
		sender:  sender,
		log:     log,
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.log.Errorf("worker error: %v", err)
			p.count(ctx, "NotificationsFailed")
			return err
		}
		p.count(ctx, "NotificationsSent")
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev notify.Event
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if ev.To == "" {
		return fmt.Errorf("%s event has no recipient", ev.Type)
	}

	p.log.Infof("[worker] received %s event for %s", ev.Type, ev.To)

	email, err := notify.Render(ev)
	if err != nil {
		return fmt.Errorf("render %s event: %w", ev.Type, err)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &p.sender,
		Destination: &sestypes.Destination{
			ToAddresses: []string{ev.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: &email.Subject},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: &email.HTML},
				},
			},
		},
	}
	if _, err := p.ses.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send %s email to %s: %w", ev.Type, ev.To, err)
	}

	p.log.Infof("[worker] delivered %s email to %s", ev.Type, ev.To)
	return nil
}

// count is best-effort metric emission.
func (p *Processor) count(ctx context.Context, name string) {
	if p.metrics == nil {
		return
	}
	if err := p.metrics.Count(ctx, name, 1); err != nil {
		p.log.Warnf("emit %s metric: %v", name, err)
	}
}
