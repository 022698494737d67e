package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest(t *testing.T) {
	v := New()

	valid := CreateOrderRequest{
		Items:        []OrderLine{{ItemID: "item-1", Quantity: 2}},
		CardLastFour: "4242",
	}
	require.NoError(t, v.Struct(valid))

	cases := map[string]CreateOrderRequest{
		"no items":        {CardLastFour: "4242"},
		"zero quantity":   {Items: []OrderLine{{ItemID: "item-1"}}, CardLastFour: "4242"},
		"missing item id": {Items: []OrderLine{{Quantity: 1}}, CardLastFour: "4242"},
		"short card":      {Items: []OrderLine{{ItemID: "item-1", Quantity: 1}}, CardLastFour: "42"},
		"non-numeric":     {Items: []OrderLine{{ItemID: "item-1", Quantity: 1}}, CardLastFour: "42ab"},
	}
	for name, req := range cases {
		require.Error(t, v.Struct(req), name)
	}
}

func TestCreateItemRequest(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(CreateItemRequest{Name: "Keyboard", Price: 49.99, Count: 10}))
	require.Error(t, v.Struct(CreateItemRequest{Price: 49.99}), "missing name")
	require.Error(t, v.Struct(CreateItemRequest{Name: "Keyboard", Price: -1}), "negative price")
	require.Error(t, v.Struct(CreateItemRequest{Name: "Keyboard", Price: 49.99, Count: -1}), "negative count")
}

func TestCreateInquiryRequestCategory(t *testing.T) {
	v := New()

	valid := CreateInquiryRequest{
		Title:       "Damaged delivery",
		Description: "The package arrived crushed.",
		Category:    "Shipping",
		Name:        "Dana",
		Email:       "dana@example.com",
	}
	require.NoError(t, v.Struct(valid))

	bad := valid
	bad.Category = "Returns"
	require.Error(t, v.Struct(bad))

	noEmail := valid
	noEmail.Email = "not-an-email"
	require.Error(t, v.Struct(noEmail))
}

func TestSupplierRequest(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(SupplierRequest{Name: "Acme", Email: "sales@acme.example"}))
	require.Error(t, v.Struct(SupplierRequest{Email: "sales@acme.example"}), "missing name")
	require.Error(t, v.Struct(SupplierRequest{Name: "Acme", Email: "nope"}), "bad email")
}

func TestCreateFeedbackRequestRating(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(CreateFeedbackRequest{Rating: 3}))
	require.Error(t, v.Struct(CreateFeedbackRequest{Rating: 0}))
	require.Error(t, v.Struct(CreateFeedbackRequest{Rating: 6}))
}

func TestAddResponseRequest(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(AddResponseRequest{Message: "On it.", Responder: "agent-7"}))
	require.Error(t, v.Struct(AddResponseRequest{Responder: "agent-7"}), "missing message")
	require.Error(t, v.Struct(AddResponseRequest{Message: "On it."}), "missing responder")
}
