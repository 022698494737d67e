package inquiries

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

// Store encapsulates operations on the inquiries table. Responses live as an
// embedded list inside the inquiry item, so status changes and appends are
// read-modify-write saves of the whole document.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new inquiries Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches an inquiry by inquiry_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, inquiryID string) (*Inquiry, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"inquiry_id": &types.AttributeValueMemberS{Value: inquiryID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var in Inquiry
	if err := attributevalue.UnmarshalMap(out.Item, &in); err != nil {
		return nil, fmt.Errorf("unmarshal inquiry: %w", err)
	}
	return &in, nil
}

// Save writes the inquiry unconditionally (create or overwrite).
func (s *Store) Save(ctx context.Context, in *Inquiry) error {
	now := s.nowFunc()
	if in.CreatedAt.IsZero() {
		in.CreatedAt = now
	}
	in.UpdatedAt = now

	m, err := attributevalue.MarshalMap(in)
	if err != nil {
		return fmt.Errorf("marshal inquiry: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      m,
	}); err != nil {
		return fmt.Errorf("put inquiry: %w", err)
	}
	return nil
}

// Delete removes an inquiry. Returns (found=false, nil) when the id did not exist.
func (s *Store) Delete(ctx context.Context, inquiryID string) (bool, error) {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"inquiry_id": &types.AttributeValueMemberS{Value: inquiryID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete inquiry: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

// List returns inquiries newest-first. An empty email lists all inquiries;
// otherwise results are restricted to that submitter.
func (s *Store) List(ctx context.Context, email string) ([]Inquiry, error) {
	input := &dyn.ScanInput{TableName: &s.tableName}
	if email != "" {
		expr := "email = :e"
		input.FilterExpression = &expr
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		}
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan inquiries: %w", err)
	}

	list := make([]Inquiry, 0, len(out.Items))
	for _, raw := range out.Items {
		var in Inquiry
		if err := attributevalue.UnmarshalMap(raw, &in); err != nil {
			return nil, fmt.Errorf("unmarshal inquiry: %w", err)
		}
		list = append(list, in)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
