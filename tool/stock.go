// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grocermind/grocermind/stock"
)

// StockLookup is the remote stock capability consumed by the stock tool
type StockLookup interface {
	Lookup(ctx context.Context, productID string) (*stock.Info, error)
}

// StockTool checks real-time stock via the remote stock service
type StockTool struct {
	client StockLookup
}

func NewStockTool(client StockLookup) *StockTool {
	return &StockTool{client: client}
}

func (t *StockTool) Name() string        { return "get_stock_price" }
func (t *StockTool) Description() string { return "Check real-time stock price and availability for a product ID" }

func (t *StockTool) ParamsJSONSchema() map[string]any {
	return objectSchema(map[string]any{
		"product_id": stringSchema("Product ID to check stock and price for"),
	}, "product_id")
}

func (t *StockTool) Invoke(ctx context.Context, paramsJSON string) (string, error) {
	var params struct {
		ProductID string `json:"product_id"`
	}
	if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
		return "", fmt.Errorf("failed to parse parameters: %w", err)
	}

	info, err := t.client.Lookup(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, stock.ErrNotFound) {
			return marshalResult(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("Product %s not found.", params.ProductID),
			})
		}
		return "", fmt.Errorf("stock lookup failed: %w", err)
	}

	availability := "out of stock"
	if info.InStock {
		availability = "in stock"
	}
	return marshalResult(map[string]any{
		"success": true,
		"message": fmt.Sprintf("%s: $%.2f - %d units available (%s) at %s",
			info.Name, info.Price, info.Quantity, availability, info.Warehouse),
	})
}
