package suppliers

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

// Store encapsulates operations on the suppliers table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new suppliers Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches a supplier by supplier_id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, supplierID string) (*Supplier, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"supplier_id": &types.AttributeValueMemberS{Value: supplierID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var sp Supplier
	if err := attributevalue.UnmarshalMap(out.Item, &sp); err != nil {
		return nil, fmt.Errorf("unmarshal supplier: %w", err)
	}
	return &sp, nil
}

// FindByEmail returns the supplier holding the email, or (nil, nil). The
// uniqueness check is a scan, not a transactional guarantee.
func (s *Store) FindByEmail(ctx context.Context, email string) (*Supplier, error) {
	expr := "email = :e"
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: &expr,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan suppliers by email: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var sp Supplier
	if err := attributevalue.UnmarshalMap(out.Items[0], &sp); err != nil {
		return nil, fmt.Errorf("unmarshal supplier: %w", err)
	}
	return &sp, nil
}

// Save writes the supplier unconditionally (create or overwrite).
func (s *Store) Save(ctx context.Context, sp *Supplier) error {
	now := s.nowFunc()
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = now
	}
	sp.UpdatedAt = now

	m, err := attributevalue.MarshalMap(sp)
	if err != nil {
		return fmt.Errorf("marshal supplier: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      m,
	}); err != nil {
		return fmt.Errorf("put supplier: %w", err)
	}
	return nil
}

// Delete removes a supplier. Returns (found=false, nil) when the id did not exist.
func (s *Store) Delete(ctx context.Context, supplierID string) (bool, error) {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"supplier_id": &types.AttributeValueMemberS{Value: supplierID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("delete supplier: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

// List returns all suppliers, newest first.
func (s *Store) List(ctx context.Context) ([]Supplier, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{TableName: &s.tableName})
	if err != nil {
		return nil, fmt.Errorf("scan suppliers: %w", err)
	}
	list := make([]Supplier, 0, len(out.Items))
	for _, raw := range out.Items {
		var sp Supplier
		if err := attributevalue.UnmarshalMap(raw, &sp); err != nil {
			return nil, fmt.Errorf("unmarshal supplier: %w", err)
		}
		list = append(list, sp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
