package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sqs.SendMessageOutput{}, nil
}

func TestDispatcherPublish(t *testing.T) {
	q := &fakeSQS{}
	d := NewDispatcher(q, "https://sqs.example/queue")

	ev := Event{
		Type: EventOrderConfirmation,
		To:   "user1@example.com",
		Data: map[string]string{"order_id": "order-1"},
	}
	require.NoError(t, d.Publish(context.Background(), ev))
	require.Len(t, q.inputs, 1)

	in := q.inputs[0]
	require.Equal(t, "https://sqs.example/queue", *in.QueueUrl)

	var got Event
	require.NoError(t, json.Unmarshal([]byte(*in.MessageBody), &got))
	require.Equal(t, ev, got)

	require.Equal(t, EventOrderConfirmation, *in.MessageAttributes["event_type"].StringValue)
	require.Equal(t, "user1@example.com", *in.MessageAttributes["recipient"].StringValue)
}

func TestDispatcherPublishQueueError(t *testing.T) {
	q := &fakeSQS{err: errors.New("queue unavailable")}
	d := NewDispatcher(q, "https://sqs.example/queue")

	err := d.Publish(context.Background(), Event{Type: EventOrderDecision, To: "x@example.com"})
	require.Error(t, err)
}
