package feedback

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/commerceflow/backend/internal/aws"
)

// Store encapsulates operations on the feedback table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new feedback Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a feedback entry.
func (s *Store) Create(ctx context.Context, f *Feedback) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = s.nowFunc()
	}
	m, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      m,
	}); err != nil {
		return fmt.Errorf("put feedback: %w", err)
	}
	return nil
}

// Get fetches a feedback entry by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, feedbackID string) (*Feedback, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"feedback_id": &types.AttributeValueMemberS{Value: feedbackID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var f Feedback
	if err := attributevalue.UnmarshalMap(out.Item, &f); err != nil {
		return nil, fmt.Errorf("unmarshal feedback: %w", err)
	}
	return &f, nil
}

// Delete removes a feedback entry. Returns (found=false, nil) when missing.
func (s *Store) Delete(ctx context.Context, feedbackID string) (bool, error) {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"feedback_id": &types.AttributeValueMemberS{Value: feedbackID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete feedback: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

// List returns all feedback entries, newest first.
func (s *Store) List(ctx context.Context) ([]Feedback, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	list := make([]Feedback, 0, len(out.Items))
	for _, raw := range out.Items {
		var f Feedback
		if err := attributevalue.UnmarshalMap(raw, &f); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
