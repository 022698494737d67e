package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/aws/awstest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := awstest.NewDynamoDB(map[string]string{"suppliers": "supplier_id"})
	return NewService(NewStore(db, "suppliers"))
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateParams{
		Name:  "Acme Wholesale",
		Email: "sales@acme.example",
		Phone: "+1-555-0100",
		Items: []string{"item-1", "item-2"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.SupplierID)

	_, err = svc.Create(ctx, CreateParams{
		Name:  "Acme Clone",
		Email: "sales@acme.example",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateParams{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Name: "Bolt", Email: "b@bolt.example"})
	require.NoError(t, err)

	// Moving to an email held by another supplier conflicts.
	_, err = svc.Update(ctx, a.SupplierID, CreateParams{Name: "Acme", Email: "b@bolt.example"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	// Keeping your own email is fine.
	got, err := svc.Update(ctx, a.SupplierID, CreateParams{Name: "Acme Renamed", Email: "a@acme.example"})
	require.NoError(t, err)
	require.Equal(t, "Acme Renamed", got.Name)
}

func TestUpdateMissingSupplier(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), "no-such-id", CreateParams{Name: "x", Email: "x@example.com"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, CreateParams{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, sp.SupplierID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Name)

	require.NoError(t, svc.Delete(ctx, sp.SupplierID))
	require.ErrorIs(t, svc.Delete(ctx, sp.SupplierID), apperrors.ErrNotFound)

	_, err = svc.Get(ctx, sp.SupplierID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListReturnsAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateParams{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateParams{Name: "Bolt", Email: "b@bolt.example"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
