package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/commerceflow/backend/internal/aws/awstest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := awstest.NewDynamoDB(map[string]string{"idempotency": "idempotency_key"})
	return NewStore(db, "idempotency", 48*time.Hour)
}

func TestCreateIfNotExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.CreateIfNotExists(ctx, "key-1", "order-1")
	require.NoError(t, err)
	require.True(t, created)

	created, err = store.CreateIfNotExists(ctx, "key-1", "order-2")
	require.NoError(t, err)
	require.False(t, created)

	rec, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "order-1", rec.OrderID)
	require.Equal(t, StatusInProgress, rec.Status)
	require.Greater(t, rec.ExpiresAt, time.Now().Unix())
}

func TestGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Get(context.Background(), "no-such-key")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestMarkDoneStoresResponse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateIfNotExists(ctx, "key-1", "order-1")
	require.NoError(t, err)

	require.NoError(t, store.MarkDone(ctx, "key-1", `{"order_id":"order-1"}`, 201))

	rec, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	require.Equal(t, StatusDone, rec.Status)
	require.Equal(t, `{"order_id":"order-1"}`, rec.ResponseBody)
	require.Equal(t, 201, rec.ResponseStatus)
}

func TestMarkFailed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateIfNotExists(ctx, "key-1", "order-1")
	require.NoError(t, err)

	require.NoError(t, store.MarkFailed(ctx, "key-1", "stock write failed"))

	rec, err := store.Get(ctx, "key-1")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, rec.Status)
}

func TestTTLWindow(t *testing.T) {
	store := newTestStore(t)
	require.Equal(t, 48*time.Hour, store.TTLWindow())
}
