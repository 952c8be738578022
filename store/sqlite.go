// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package store

import (
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// SQLiteOrders is an order ledger backed by a SQLite database.
// The database is opened read-only from the core's point of view; this
// type never writes to it.
type SQLiteOrders struct {
	db *sql.DB
}

// OpenSQLiteOrders opens the order ledger at the given SQLite path
func OpenSQLiteOrders(path string) (*SQLiteOrders, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "opening order database %s", path)
	}
	if err := db.Ping(); err != nil {
		return nil, pkgerrors.Wrapf(err, "connecting to order database %s", path)
	}
	return &SQLiteOrders{db: db}, nil
}

func (s *SQLiteOrders) Lookup(orderID string) (Order, error) {
	var order Order
	row := s.db.QueryRow(`SELECT order_id, total, COALESCE(status, '') FROM orders WHERE order_id = ?`, orderID)
	if err := row.Scan(&order.ID, &order.Total, &order.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, pkgerrors.Wrapf(err, "looking up order %s", orderID)
	}
	return order, nil
}

func (s *SQLiteOrders) Close() error {
	return s.db.Close()
}
