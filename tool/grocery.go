// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/store"
)

// PriceTool looks up the price of a catalog item
type PriceTool struct {
	catalog *store.Catalog
}

func NewPriceTool(catalog *store.Catalog) *PriceTool {
	return &PriceTool{catalog: catalog}
}

func (t *PriceTool) Name() string        { return "get_item_price" }
func (t *PriceTool) Description() string { return "Check the price and availability of a grocery item" }

func (t *PriceTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{
		"item": stringSchema("Name of the grocery item"),
	}, "item")
}

func (t *PriceTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params struct {
		Item string `json:"item"`
	}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse parameters: %w", err)
	}

	product, ok := t.catalog.Find(params.Item)
	if !ok {
		return marshalResult(map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Item %q not found in catalog.", params.Item),
		})
	}

	return marshalResult(map[string]any{
		"success":  true,
		"name":     product.Name,
		"price":    product.Price,
		"in_stock": product.InStock,
	})
}

// CartAddTool adds a catalog item to the session's shopping cart
type CartAddTool struct {
	catalog *store.Catalog
	carts   *store.Carts
}

func NewCartAddTool(catalog *store.Catalog, carts *store.Carts) *CartAddTool {
	return &CartAddTool{catalog: catalog, carts: carts}
}

func (t *CartAddTool) Name() string        { return "add_to_cart" }
func (t *CartAddTool) Description() string { return "Add a grocery item to the shopping cart" }

func (t *CartAddTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{
		"item":     stringSchema("Name of the grocery item"),
		"quantity": integerSchema("Quantity to add, defaults to 1"),
	}, "item")
}

func (t *CartAddTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params struct {
		Item     string `json:"item"`
		Quantity int    `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse parameters: %w", err)
	}

	product, ok := t.catalog.Find(params.Item)
	if !ok {
		return marshalResult(map[string]any{
			"success": false,
			"error":   fmt.Sprintf("Item %q not found in catalog.", params.Item),
		})
	}
	if !product.InStock {
		return marshalResult(map[string]any{
			"success": false,
			"error":   fmt.Sprintf("%s is out of stock.", product.Name),
		})
	}

	if params.Quantity <= 0 {
		params.Quantity = 1
	}
	cart := t.carts.Get(SessionFromContext(ctx))
	cart.Add(product.Name, product.Price, params.Quantity)

	return marshalResult(map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Added %dx %s to cart.", params.Quantity, product.Name),
		"cart_total": cart.Total(),
	})
}

// CartSummaryTool reports the session's current cart contents
type CartSummaryTool struct {
	carts *store.Carts
}

func NewCartSummaryTool(carts *store.Carts) *CartSummaryTool {
	return &CartSummaryTool{carts: carts}
}

func (t *CartSummaryTool) Name() string        { return "get_cart_summary" }
func (t *CartSummaryTool) Description() string { return "View the current shopping cart contents and total" }

func (t *CartSummaryTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{})
}

func (t *CartSummaryTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	cart := t.carts.Get(SessionFromContext(ctx))
	return marshalResult(map[string]any{
		"items": cart.Items(),
		"total": cart.Total(),
	})
}

const budgetNormalizePrompt = `You are a product name normalizer for a grocery store.

Available products:
%s

For each item in the user's shopping list:
1. Identify the most likely matching product from the available products
2. Extract any quantity mentioned ("two eggs" means quantity 2, "eggs" means quantity 1)
3. Normalize the item name to match the catalog

Respond with ONLY a JSON object in this exact format:
{"items": [{"name": "normalized product name", "quantity": 1}]}`

type normalizedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// BudgetTool checks whether a shopping list fits within a budget.
// Free-form lists ("3 apples, two eggs") are normalized with a model
// call; a plain comma split is the fallback when the call fails or no
// provider is configured.
type BudgetTool struct {
	catalog   *store.Catalog
	provider  model.Provider
	modelName string
}

func NewBudgetTool(catalog *store.Catalog, provider model.Provider, modelName string) *BudgetTool {
	return &BudgetTool{
		catalog:   catalog,
		provider:  provider,
		modelName: modelName,
	}
}

func (t *BudgetTool) Name() string { return "calculate_budget" }
func (t *BudgetTool) Description() string {
	return "Check whether a comma-separated list of items fits within a budget"
}

func (t *BudgetTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{
		"items":  stringSchema("Comma-separated list of grocery items"),
		"budget": numberSchema("Budget in dollars"),
	}, "items", "budget")
}

func (t *BudgetTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params struct {
		Items  string  `json:"items"`
		Budget float64 `json:"budget"`
	}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse parameters: %w", err)
	}

	var (
		total    float64
		found    []string
		notFound []string
	)
	for _, item := range t.normalizeItems(ctx, params.Items) {
		product, ok := t.catalog.Find(item.Name)
		switch {
		case !ok:
			notFound = append(notFound, item.Name)
		case !product.InStock:
			notFound = append(notFound, fmt.Sprintf("%s (out of stock)", product.Name))
		case item.Quantity > 1:
			cost := product.Price * float64(item.Quantity)
			total += cost
			found = append(found, fmt.Sprintf("%dx %s: $%.2f ($%.2f each)", item.Quantity, product.Name, cost, product.Price))
		default:
			total += product.Price
			found = append(found, fmt.Sprintf("%s: $%.2f", product.Name, product.Price))
		}
	}

	withinBudget := total <= params.Budget
	result := map[string]any{
		"total":         total,
		"budget":        params.Budget,
		"within_budget": withinBudget,
		"found":         found,
	}
	if withinBudget {
		result["remaining"] = params.Budget - total
	} else {
		result["overage"] = total - params.Budget
	}
	if len(notFound) > 0 {
		result["not_available"] = notFound
	}
	return marshalResult(result)
}

var budgetJSONRe = regexp.MustCompile(`(?s)\{.*\}`)

// normalizeItems resolves a free-form shopping list into catalog names
// with quantities. Any normalization failure degrades to the comma split.
func (t *BudgetTool) normalizeItems(ctx context.Context, items string) []normalizedItem {
	if t.provider == nil {
		return splitItems(items)
	}

	products := t.catalog.Products()
	names := make([]string, len(products))
	for i, product := range products {
		names[i] = product.Name
	}

	settings := model.DefaultSettings()
	settings.Model = t.modelName
	settings.MaxTokens = 512
	settings.ResponseFormat = "json_object"

	response, err := t.provider.CreateChatCompletion(ctx, []model.Message{
		{Role: "system", Content: fmt.Sprintf(budgetNormalizePrompt, strings.Join(names, ", "))},
		{Role: "user", Content: items},
	}, settings)
	if err != nil {
		log.Warn().Err(err).Msg("item normalization call failed, falling back to plain split")
		return splitItems(items)
	}

	content := strings.TrimSpace(response.Message.Content)
	if match := budgetJSONRe.FindString(content); match != "" {
		content = match
	}

	var parsed struct {
		Items []normalizedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil || len(parsed.Items) == 0 {
		log.Warn().Str("content", content).Msg("unparseable normalization response, falling back to plain split")
		return splitItems(items)
	}

	for i := range parsed.Items {
		if parsed.Items[i].Quantity <= 0 {
			parsed.Items[i].Quantity = 1
		}
	}
	return parsed.Items
}

func splitItems(items string) []normalizedItem {
	var out []normalizedItem
	for _, raw := range strings.Split(items, ",") {
		if item := strings.TrimSpace(raw); item != "" {
			out = append(out, normalizedItem{Name: item, Quantity: 1})
		}
	}
	return out
}

// RefundTool creates a refund for an order. The orchestrator validates
// refunds against the policy limit before this tool ever runs; the tool
// still rejects unknown orders.
type RefundTool struct {
	orders store.OrderStore
}

func NewRefundTool(orders store.OrderStore) *RefundTool {
	return &RefundTool{orders: orders}
}

func (t *RefundTool) Name() string        { return "create_refund" }
func (t *RefundTool) Description() string { return "Process a refund for an order" }

func (t *RefundTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{
		"order_id": stringSchema("The order ID to refund, e.g. ORD001"),
		"reason":   stringSchema("Reason for the refund"),
	}, "order_id")
}

func (t *RefundTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params struct {
		OrderID string `json:"order_id"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse parameters: %w", err)
	}
	if params.Reason == "" {
		params.Reason = "Customer request"
	}

	order, err := t.orders.Lookup(params.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			return marshalResult(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("Order %s not found in system.", params.OrderID),
			})
		}
		return "", fmt.Errorf("order lookup failed: %w", err)
	}

	log.Info().Str("order_id", order.ID).Float64("amount", order.Total).Msg("creating refund")

	return marshalResult(map[string]any{
		"success":   true,
		"refund_id": "REF" + order.ID,
		"order_id":  order.ID,
		"amount":    order.Total,
		"reason":    params.Reason,
		"status":    "pending",
		"message": fmt.Sprintf("Refund of $%.2f initiated for order %s. You will receive it in 5-7 business days.",
			order.Total, order.ID),
	})
}

func marshalResult(result map[string]any) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(data), nil
}
