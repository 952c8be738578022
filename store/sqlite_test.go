// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLedger(t *testing.T) *SQLiteOrders {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.db")
	ledger, err := OpenSQLiteOrders(path)
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })

	_, err = ledger.db.Exec(`CREATE TABLE orders (order_id TEXT PRIMARY KEY, total REAL NOT NULL, status TEXT)`)
	require.NoError(t, err)
	_, err = ledger.db.Exec(`INSERT INTO orders (order_id, total, status) VALUES
		('ORD001', 45.99, 'delivered'),
		('ORD005', 1500.00, NULL)`)
	require.NoError(t, err)

	return ledger
}

func TestSQLiteOrdersLookup(t *testing.T) {
	ledger := openTestLedger(t)

	order, err := ledger.Lookup("ORD001")
	require.NoError(t, err)
	assert.Equal(t, "ORD001", order.ID)
	assert.Equal(t, 45.99, order.Total)
	assert.Equal(t, "delivered", order.Status)
}

func TestSQLiteOrdersNullStatus(t *testing.T) {
	ledger := openTestLedger(t)

	order, err := ledger.Lookup("ORD005")
	require.NoError(t, err)
	assert.Empty(t, order.Status, "NULL status reads as an empty string")
}

func TestSQLiteOrdersNotFound(t *testing.T) {
	ledger := openTestLedger(t)

	_, err := ledger.Lookup("ORD999")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
