package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/commerceflow/backend/internal/apperrors"
	"github.com/commerceflow/backend/internal/auth"
	"github.com/commerceflow/backend/internal/aws/awstest"
	"github.com/commerceflow/backend/internal/catalog"
	"github.com/commerceflow/backend/internal/idempotency"
	"github.com/commerceflow/backend/internal/notify"
)

type fakePublisher struct {
	events []notify.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, ev notify.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type serviceFixture struct {
	svc     *Service
	catalog *catalog.Store
	store   *Store
	pub     *fakePublisher
	db      *awstest.DynamoDB
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := awstest.NewDynamoDB(map[string]string{
		"orders":      "order_id",
		"items":       "item_id",
		"idempotency": "idempotency_key",
	})
	ordersStore := NewStore(db, "orders")
	catalogStore := catalog.NewStore(db, "items")
	idempStore := idempotency.NewStore(db, "idempotency", 48*time.Hour)
	pub := &fakePublisher{}

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewService(ordersStore, catalogStore, idempStore, "idempotency", pub, log)
	return &serviceFixture{svc: svc, catalog: catalogStore, store: ordersStore, pub: pub, db: db}
}

func (f *serviceFixture) seedItem(t *testing.T, id string, price float64, count int) {
	t.Helper()
	require.NoError(t, f.catalog.Save(context.Background(), &catalog.Item{
		ItemID: id,
		Name:   id,
		Price:  price,
		Count:  count,
	}))
}

func (f *serviceFixture) itemCount(t *testing.T, id string) int {
	t.Helper()
	it, err := f.catalog.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Count
}

var customer = auth.Identity{ID: "user-1", Role: auth.RoleUser, Email: "user1@example.com"}

func TestCreateComputesTotalAndDecrementsStock(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 10)

	o, created, err := f.svc.Create(context.Background(), customer,
		[]LineRequest{{ItemID: "item-1", Quantity: 2}}, "4242", "")
	require.NoError(t, err)
	require.True(t, created)

	require.Equal(t, 100.0, o.TotalAmount)
	require.Equal(t, PaymentCompleted, o.PaymentStatus)
	require.Equal(t, ApprovalPending, o.ApprovalStatus)
	require.Equal(t, "user-1", o.UserID)
	require.Len(t, o.Items, 1)
	require.Equal(t, 50.0, o.Items[0].Price)

	require.Equal(t, 8, f.itemCount(t, "item-1"))

	stored, err := f.store.Get(context.Background(), o.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.Len(t, f.pub.events, 1)
	require.Equal(t, notify.EventOrderConfirmation, f.pub.events[0].Type)
	require.Equal(t, "user1@example.com", f.pub.events[0].To)
	require.Equal(t, o.OrderID, f.pub.events[0].Data["order_id"])
}

func TestCreateSumsMultipleLines(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 10)
	f.seedItem(t, "item-2", 19.5, 4)

	o, _, err := f.svc.Create(context.Background(), customer, []LineRequest{
		{ItemID: "item-1", Quantity: 2},
		{ItemID: "item-2", Quantity: 3},
	}, "4242", "")
	require.NoError(t, err)

	require.Equal(t, 2*50+3*19.5, o.TotalAmount)
	require.Equal(t, 8, f.itemCount(t, "item-1"))
	require.Equal(t, 1, f.itemCount(t, "item-2"))
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	f := newServiceFixture(t)

	_, _, err := f.svc.Create(context.Background(), customer, nil, "4242", "")
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

// A missing item mid-sequence aborts the checkout, but decrements already
// written for earlier lines are not rolled back.
func TestCreateMissingItemLeavesEarlierDecrements(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 10)

	_, _, err := f.svc.Create(context.Background(), customer, []LineRequest{
		{ItemID: "item-1", Quantity: 2},
		{ItemID: "item-missing", Quantity: 1},
	}, "4242", "")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.Equal(t, 8, f.itemCount(t, "item-1"))
	require.Empty(t, f.db.Items("orders"))
	require.Empty(t, f.pub.events)
}

func TestCreateAllowsNegativeStock(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 1)

	_, _, err := f.svc.Create(context.Background(), customer,
		[]LineRequest{{ItemID: "item-1", Quantity: 3}}, "4242", "")
	require.NoError(t, err)
	require.Equal(t, -2, f.itemCount(t, "item-1"))
}

func TestCreateNotificationFailureDoesNotFailCheckout(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 10)
	f.pub.err = errors.New("queue unavailable")

	o, created, err := f.svc.Create(context.Background(), customer,
		[]LineRequest{{ItemID: "item-1", Quantity: 1}}, "4242", "")
	require.NoError(t, err)
	require.True(t, created)
	require.NotNil(t, o)
}

func TestCreateIdempotencyReplay(t *testing.T) {
	f := newServiceFixture(t)
	f.seedItem(t, "item-1", 50, 10)
	lines := []LineRequest{{ItemID: "item-1", Quantity: 2}}

	first, created, err := f.svc.Create(context.Background(), customer, lines, "4242", "checkout-key-1")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 8, f.itemCount(t, "item-1"))

	second, created, err := f.svc.Create(context.Background(), customer, lines, "4242", "checkout-key-1")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.OrderID, second.OrderID)

	// The replay never touches the catalog again.
	require.Equal(t, 8, f.itemCount(t, "item-1"))
	require.Len(t, f.db.Items("orders"), 1)
}

func TestListScopesNonAdminToOwnOrders(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Create(ctx, testOrder("order-1", "user-1", base)))
	require.NoError(t, f.store.Create(ctx, testOrder("order-2", "user-2", base.Add(time.Hour))))
	require.NoError(t, f.store.Create(ctx, testOrder("order-3", "user-1", base.Add(2*time.Hour))))

	// The filter argument is ignored for a non-admin caller.
	list, err := f.svc.List(ctx, customer, "user-2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "order-3", list[0].OrderID)
	require.Equal(t, "order-1", list[1].OrderID)

	admin := auth.Identity{ID: "admin-1", Role: auth.RoleAdmin}
	list, err = f.svc.List(ctx, admin, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestListCapsAtLimit(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < ListLimit+5; i++ {
		id := fmt.Sprintf("order-%03d", i)
		require.NoError(t, f.store.Create(ctx, testOrder(id, "user-1", base.Add(time.Duration(i)*time.Minute))))
	}

	list, err := f.svc.List(ctx, customer, "")
	require.NoError(t, err)
	require.Len(t, list, ListLimit)
	require.Equal(t, fmt.Sprintf("order-%03d", ListLimit+4), list[0].OrderID)
}

func TestListPendingOnly(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Create(ctx, testOrder("order-1", "user-1", time.Now())))
	decided := testOrder("order-2", "user-2", time.Now())
	decided.ApprovalStatus = ApprovalApproved
	require.NoError(t, f.store.Create(ctx, decided))

	list, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "order-1", list[0].OrderID)
}

func TestApproveAndRepeatDecisions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	o := testOrder("order-1", "user-1", time.Now())
	o.UserEmail = "user1@example.com"
	require.NoError(t, f.store.Create(ctx, o))

	got, err := f.svc.Approve(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, ApprovalApproved, got.ApprovalStatus)

	// Repeating a decision is a silent overwrite, never an error.
	got, err = f.svc.Approve(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, ApprovalApproved, got.ApprovalStatus)

	got, err = f.svc.Reject(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, ApprovalRejected, got.ApprovalStatus)

	require.Len(t, f.pub.events, 3)
	for _, ev := range f.pub.events {
		require.Equal(t, notify.EventOrderDecision, ev.Type)
		require.Equal(t, "user1@example.com", ev.To)
	}
	require.Equal(t, ApprovalRejected, f.pub.events[2].Data["decision"])
}

func TestDecideMissingOrder(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.Approve(context.Background(), "no-such-order")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByIDOwnership(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Create(ctx, testOrder("order-1", "user-1", time.Now())))

	got, err := f.svc.GetByID(ctx, "order-1", customer)
	require.NoError(t, err)
	require.Equal(t, "order-1", got.OrderID)

	other := auth.Identity{ID: "user-2", Role: auth.RoleUser}
	_, err = f.svc.GetByID(ctx, "order-1", other)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	admin := auth.Identity{ID: "admin-1", Role: auth.RoleAdmin}
	got, err = f.svc.GetByID(ctx, "order-1", admin)
	require.NoError(t, err)
	require.Equal(t, "order-1", got.OrderID)

	_, err = f.svc.GetByID(ctx, "no-such-order", admin)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
