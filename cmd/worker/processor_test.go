package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{}, nil
}

func newTestProcessor(ses *fakeSES) *Processor {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewProcessor(ses, nil, "noreply@example.com", log)
}

func sqsEvent(bodies ...string) events.SQSEvent {
	ev := events.SQSEvent{}
	for _, b := range bodies {
		ev.Records = append(ev.Records, events.SQSMessage{Body: b})
	}
	return ev
}

func TestHandleDeliversEmail(t *testing.T) {
	ses := &fakeSES{}
	p := newTestProcessor(ses)

	body := `{"type":"order_confirmation","to":"user1@example.com","data":{"order_id":"order-1","total":"100.00","card_last_four":"4242"}}`
	require.NoError(t, p.Handle(context.Background(), sqsEvent(body)))

	require.Len(t, ses.inputs, 1)
	in := ses.inputs[0]
	require.Equal(t, "noreply@example.com", *in.FromEmailAddress)
	require.Equal(t, []string{"user1@example.com"}, in.Destination.ToAddresses)
	require.Contains(t, *in.Content.Simple.Subject.Data, "order-1")
	require.Contains(t, *in.Content.Simple.Body.Html.Data, "4242")
}

func TestHandleProcessesBatch(t *testing.T) {
	ses := &fakeSES{}
	p := newTestProcessor(ses)

	order := `{"type":"order_decision","to":"a@example.com","data":{"order_id":"order-1","decision":"Approved"}}`
	inquiry := `{"type":"inquiry_confirmation","to":"b@example.com","data":{"inquiry_id":"inq-1","title":"t","name":"Dana"}}`
	require.NoError(t, p.Handle(context.Background(), sqsEvent(order, inquiry)))
	require.Len(t, ses.inputs, 2)
}

// A failed send returns the error so the queue redelivers the message.
func TestHandleSendFailureReturnsError(t *testing.T) {
	ses := &fakeSES{err: errors.New("ses throttled")}
	p := newTestProcessor(ses)

	body := `{"type":"order_decision","to":"a@example.com","data":{"order_id":"order-1","decision":"Approved"}}`
	require.Error(t, p.Handle(context.Background(), sqsEvent(body)))
}

func TestHandleInvalidBody(t *testing.T) {
	ses := &fakeSES{}
	p := newTestProcessor(ses)

	require.Error(t, p.Handle(context.Background(), sqsEvent("not json")))
	require.Empty(t, ses.inputs)
}

func TestHandleMissingRecipient(t *testing.T) {
	ses := &fakeSES{}
	p := newTestProcessor(ses)

	body := `{"type":"order_decision","data":{"order_id":"order-1","decision":"Approved"}}`
	require.Error(t, p.Handle(context.Background(), sqsEvent(body)))
	require.Empty(t, ses.inputs)
}

func TestHandleUnknownEventType(t *testing.T) {
	ses := &fakeSES{}
	p := newTestProcessor(ses)

	body := `{"type":"price_drop","to":"a@example.com"}`
	require.Error(t, p.Handle(context.Background(), sqsEvent(body)))
	require.Empty(t, ses.inputs)
}
