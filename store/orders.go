// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package store

import (
	"encoding/json"
	"errors"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrOrderNotFound is returned when an order ID is absent from the ledger
var ErrOrderNotFound = errors.New("order not found")

// Order is a single entry in the read-only order ledger
type Order struct {
	ID     string  `json:"order_id"`
	Total  float64 `json:"total"`
	Status string  `json:"status,omitempty"`
}

// OrderStore is a read-only lookup over the order ledger
type OrderStore interface {
	Lookup(orderID string) (Order, error)
}

// OrderTable is an in-memory order ledger keyed by order ID
type OrderTable map[string]Order

func (t OrderTable) Lookup(orderID string) (Order, error) {
	order, ok := t[orderID]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return order, nil
}

// NewOrderTable builds an order table from a list of orders
func NewOrderTable(orders []Order) OrderTable {
	table := make(OrderTable, len(orders))
	for _, order := range orders {
		table[order.ID] = order
	}
	return table
}

// LoadOrders reads the order ledger from a JSON file containing a list of orders.
// The file is read once at startup; the resulting table is never mutated.
func LoadOrders(path string) (OrderTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading order ledger %s", path)
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing order ledger %s", path)
	}

	table := NewOrderTable(orders)
	log.Info().Int("orders", len(table)).Str("path", path).Msg("loaded order ledger")
	return table, nil
}
