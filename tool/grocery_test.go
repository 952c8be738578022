// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/store"
)

type fakeProvider struct {
	content string
	err     error
	calls   int
}

func (p *fakeProvider) CreateChatCompletion(ctx context.Context, messages []model.Message, settings model.Settings) (*model.Response, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &model.Response{
		Message: model.Message{Role: "assistant", Content: p.content},
	}, nil
}

func testCatalog() *store.Catalog {
	return store.NewCatalog([]store.Product{
		{Name: "Whole Milk", Price: 3.99, InStock: true},
		{Name: "Eggs", Price: 4.50, InStock: true},
		{Name: "Sourdough Bread", Price: 5.49, InStock: false},
	})
}

func testOrders() store.OrderTable {
	return store.NewOrderTable([]store.Order{
		{ID: "ORD001", Total: 45.99},
	})
}

func invoke(t *testing.T, tl Tool, params string) map[string]any {
	return invokeCtx(t, context.Background(), tl, params)
}

func invokeCtx(t *testing.T, ctx context.Context, tl Tool, params string) map[string]any {
	t.Helper()
	out, err := tl.Invoke(ctx, params)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func TestPriceTool(t *testing.T) {
	tl := NewPriceTool(testCatalog())

	result := invoke(t, tl, `{"item": "milk"}`)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Whole Milk", result["name"])
	assert.Equal(t, 3.99, result["price"])

	result = invoke(t, tl, `{"item": "caviar"}`)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["error"], "not found in catalog")
}

func TestPriceToolBadParams(t *testing.T) {
	tl := NewPriceTool(testCatalog())

	_, err := tl.Invoke(context.Background(), "not json")
	assert.Error(t, err)
}

func TestCartAddTool(t *testing.T) {
	tl := NewCartAddTool(testCatalog(), store.NewCarts())

	result := invoke(t, tl, `{"item": "eggs", "quantity": 2}`)
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["message"], "2x Eggs")
	assert.Equal(t, 9.0, result["cart_total"])

	result = invoke(t, tl, `{"item": "sourdough"}`)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["error"], "out of stock")

	result = invoke(t, tl, `{"item": "eggs"}`)
	assert.Equal(t, true, result["success"], "Missing quantity defaults to 1")
	assert.Contains(t, result["message"], "1x Eggs")
}

func TestCartSummaryTool(t *testing.T) {
	carts := store.NewCarts()
	carts.Get(DefaultSession).Add("Eggs", 4.50, 2)
	tl := NewCartSummaryTool(carts)

	result := invoke(t, tl, `{}`)
	assert.Equal(t, 9.0, result["total"])
	assert.Len(t, result["items"], 1)
}

func TestCartToolsSessionScoped(t *testing.T) {
	carts := store.NewCarts()
	add := NewCartAddTool(testCatalog(), carts)
	summary := NewCartSummaryTool(carts)

	ctxA := WithSession(context.Background(), "session-a")
	ctxB := WithSession(context.Background(), "session-b")

	result := invokeCtx(t, ctxA, add, `{"item": "milk", "quantity": 2}`)
	assert.Equal(t, true, result["success"])

	result = invokeCtx(t, ctxB, summary, `{}`)
	assert.Empty(t, result["items"], "One session's additions must not leak into another's summary")
	assert.Equal(t, 0.0, result["total"])

	result = invokeCtx(t, ctxA, summary, `{}`)
	assert.Len(t, result["items"], 1)
	assert.InDelta(t, 7.98, result["total"].(float64), 1e-9)
}

func TestBudgetTool(t *testing.T) {
	tl := NewBudgetTool(testCatalog(), nil, "")

	result := invoke(t, tl, `{"items": "milk, eggs", "budget": 10.0}`)
	assert.Equal(t, true, result["within_budget"])
	assert.InDelta(t, 8.49, result["total"].(float64), 1e-9)
	assert.InDelta(t, 1.51, result["remaining"].(float64), 1e-9)

	result = invoke(t, tl, `{"items": "milk, eggs", "budget": 5.0}`)
	assert.Equal(t, false, result["within_budget"])
	assert.InDelta(t, 3.49, result["overage"].(float64), 1e-9)
}

func TestBudgetToolNormalizesQuantities(t *testing.T) {
	provider := &fakeProvider{content: `{"items": [{"name": "eggs", "quantity": 3}, {"name": "milk", "quantity": 1}]}`}
	tl := NewBudgetTool(testCatalog(), provider, "gpt-4o")

	result := invoke(t, tl, `{"items": "3 eggs and some milk", "budget": 20.0}`)
	assert.Equal(t, 1, provider.calls)
	assert.InDelta(t, 4.50*3+3.99, result["total"].(float64), 1e-9)

	found := result["found"].([]any)
	require.Len(t, found, 2)
	assert.Equal(t, "3x Eggs: $13.50 ($4.50 each)", found[0])
	assert.Equal(t, "Whole Milk: $3.99", found[1])
}

func TestBudgetToolNormalizationFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"provider error", &fakeProvider{err: errors.New("timeout")}},
		{"not json", &fakeProvider{content: "eggs and milk sound great"}},
		{"empty items", &fakeProvider{content: `{"items": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewBudgetTool(testCatalog(), tt.provider, "gpt-4o")

			result := invoke(t, tl, `{"items": "milk, eggs", "budget": 10.0}`)
			assert.InDelta(t, 8.49, result["total"].(float64), 1e-9,
				"Normalization failure must degrade to the plain split")
		})
	}
}

func TestBudgetToolZeroQuantityClamped(t *testing.T) {
	provider := &fakeProvider{content: `{"items": [{"name": "eggs", "quantity": 0}]}`}
	tl := NewBudgetTool(testCatalog(), provider, "gpt-4o")

	result := invoke(t, tl, `{"items": "eggs", "budget": 10.0}`)
	assert.InDelta(t, 4.50, result["total"].(float64), 1e-9)
}

func TestBudgetToolUnavailableItems(t *testing.T) {
	tl := NewBudgetTool(testCatalog(), nil, "")

	result := invoke(t, tl, `{"items": "milk, sourdough, caviar", "budget": 50.0}`)
	assert.InDelta(t, 3.99, result["total"].(float64), 1e-9, "Only in-stock catalog items count toward the total")

	notAvailable := result["not_available"].([]any)
	assert.Len(t, notAvailable, 2)
	assert.Contains(t, notAvailable, "Sourdough Bread (out of stock)")
	assert.Contains(t, notAvailable, "caviar")
}

func TestRefundTool(t *testing.T) {
	tl := NewRefundTool(testOrders())

	result := invoke(t, tl, `{"order_id": "ORD001", "reason": "damaged"}`)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "REFORD001", result["refund_id"])
	assert.Equal(t, "pending", result["status"])
	assert.Equal(t, 45.99, result["amount"])
	assert.Contains(t, result["message"], "5-7 business days")
}

func TestRefundToolUnknownOrder(t *testing.T) {
	tl := NewRefundTool(testOrders())

	result := invoke(t, tl, `{"order_id": "ORD999"}`)
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["error"], "ORD999 not found in system")
}

func TestRefundToolDefaultReason(t *testing.T) {
	tl := NewRefundTool(testOrders())

	result := invoke(t, tl, `{"order_id": "ORD001"}`)
	assert.Equal(t, "Customer request", result["reason"])
}

func TestDefinitions(t *testing.T) {
	defs := Definitions([]Tool{NewPriceTool(testCatalog()), NewBudgetTool(testCatalog(), nil, "")})
	require.Len(t, defs, 2)
	assert.Equal(t, "get_item_price", defs[0].Name)
	assert.Equal(t, "calculate_budget", defs[1].Name)
	assert.NotEmpty(t, defs[0].Parameters)
}
