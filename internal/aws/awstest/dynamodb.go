// Package awstest provides in-memory fakes of the narrow AWS client
// interfaces for unit tests. The DynamoDB fake supports the expression
// subset the stores actually use; it is intentionally minimal and not
// production-grade.
package awstest

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB is an in-memory stand-in for the real client. Tables must be
// registered up front with their partition key attribute name.
type DynamoDB struct {
	mu     sync.Mutex
	pks    map[string]string                                  // table -> pk attribute
	tables map[string]map[string]map[string]types.AttributeValue // table -> pk -> item

	// Fail injects an error per operation name ("PutItem", "Scan", ...).
	Fail map[string]error

	PutCalls      int
	GetCalls      int
	UpdateCalls   int
	DeleteCalls   int
	ScanCalls     int
	TransactCalls int
}

// NewDynamoDB returns a fake with the given table -> partition-key mapping.
func NewDynamoDB(pks map[string]string) *DynamoDB {
	tables := map[string]map[string]map[string]types.AttributeValue{}
	for tbl := range pks {
		tables[tbl] = map[string]map[string]types.AttributeValue{}
	}
	return &DynamoDB{
		pks:    pks,
		tables: tables,
		Fail:   map[string]error{},
	}
}

func (d *DynamoDB) pkValue(table string, item map[string]types.AttributeValue) (string, error) {
	pk, ok := d.pks[table]
	if !ok {
		return "", errors.New("unknown table " + table)
	}
	attr, ok := item[pk].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("missing partition key " + pk)
	}
	return attr.Value, nil
}

// Items returns a copy of the raw item map for assertions.
func (d *DynamoDB) Items(table string) map[string]map[string]types.AttributeValue {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := map[string]map[string]types.AttributeValue{}
	for k, v := range d.tables[table] {
		out[k] = v
	}
	return out
}

func (d *DynamoDB) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.PutCalls++
	if err := d.Fail["PutItem"]; err != nil {
		return nil, err
	}

	table := *params.TableName
	pk, err := d.pkValue(table, params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && strings.HasPrefix(*params.ConditionExpression, "attribute_not_exists(") {
		if _, exists := d.tables[table][pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	d.tables[table][pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (d *DynamoDB) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.GetCalls++
	if err := d.Fail["GetItem"]; err != nil {
		return nil, err
	}

	table := *params.TableName
	pk, err := d.pkValue(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := d.tables[table][pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

// UpdateItem supports "SET a = :x, b = :y" expressions with optional
// ExpressionAttributeNames substitution, with upsert semantics like the
// real service.
func (d *DynamoDB) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.UpdateCalls++
	if err := d.Fail["UpdateItem"]; err != nil {
		return nil, err
	}

	table := *params.TableName
	pk, err := d.pkValue(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := d.tables[table][pk]
	if !ok {
		item = map[string]types.AttributeValue{}
		pkAttr := d.pks[table]
		item[pkAttr] = params.Key[pkAttr]
	}

	expr := strings.TrimPrefix(*params.UpdateExpression, "SET ")
	for _, clause := range strings.Split(expr, ",") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return nil, errors.New("unsupported update expression: " + *params.UpdateExpression)
		}
		attr := strings.TrimSpace(parts[0])
		placeholder := strings.TrimSpace(parts[1])
		if strings.HasPrefix(attr, "#") {
			attr = params.ExpressionAttributeNames[attr]
		}
		val, ok := params.ExpressionAttributeValues[placeholder]
		if !ok {
			return nil, errors.New("missing expression value " + placeholder)
		}
		item[attr] = val
	}
	d.tables[table][pk] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}

func (d *DynamoDB) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.DeleteCalls++
	if err := d.Fail["DeleteItem"]; err != nil {
		return nil, err
	}

	table := *params.TableName
	pk, err := d.pkValue(table, params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := d.tables[table][pk]
	if !ok {
		return &dyn.DeleteItemOutput{}, nil
	}
	delete(d.tables[table], pk)
	return &dyn.DeleteItemOutput{Attributes: item}, nil
}

// Scan supports equality filters of the form "a = :x AND b = :y" on
// string attributes.
func (d *DynamoDB) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ScanCalls++
	if err := d.Fail["Scan"]; err != nil {
		return nil, err
	}

	table := *params.TableName
	var out []map[string]types.AttributeValue
	for _, item := range d.tables[table] {
		if params.FilterExpression != nil && !matchesFilter(item, *params.FilterExpression, params.ExpressionAttributeValues) {
			continue
		}
		out = append(out, item)
	}
	return &dyn.ScanOutput{Items: out}, nil
}

func matchesFilter(item map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue) bool {
	for _, clause := range strings.Split(expr, " AND ") {
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 {
			return false
		}
		attr := strings.TrimSpace(parts[0])
		placeholder := strings.TrimSpace(parts[1])

		want, ok := values[placeholder].(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		got, ok := item[attr].(*types.AttributeValueMemberS)
		if !ok || got.Value != want.Value {
			return false
		}
	}
	return true
}

// TransactWriteItems supports Put entries; a conditional
// attribute_not_exists Put that collides cancels the whole transaction.
func (d *DynamoDB) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.TransactCalls++
	if err := d.Fail["TransactWriteItems"]; err != nil {
		return nil, err
	}

	for _, it := range params.TransactItems {
		p := it.Put
		if p == nil {
			continue
		}
		if p.ConditionExpression != nil && strings.HasPrefix(*p.ConditionExpression, "attribute_not_exists(") {
			table := *p.TableName
			pk, err := d.pkValue(table, p.Item)
			if err != nil {
				return nil, err
			}
			if _, exists := d.tables[table][pk]; exists {
				return nil, &types.TransactionCanceledException{}
			}
		}
	}
	for _, it := range params.TransactItems {
		p := it.Put
		if p == nil {
			continue
		}
		table := *p.TableName
		pk, err := d.pkValue(table, p.Item)
		if err != nil {
			return nil, err
		}
		d.tables[table][pk] = p.Item
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}
