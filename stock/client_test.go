// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/PROD123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"product_id": "PROD123",
			"name": "Organic Apples",
			"price": 2.99,
			"quantity": 140,
			"in_stock": true,
			"warehouse": "west-2"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	info, err := client.Lookup(context.Background(), "PROD123")
	require.NoError(t, err)
	assert.Equal(t, "Organic Apples", info.Name)
	assert.Equal(t, 2.99, info.Price)
	assert.Equal(t, 140, info.Quantity)
	assert.True(t, info.InStock)
	assert.Equal(t, "west-2", info.Warehouse)
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Lookup(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.Lookup(context.Background(), "PROD123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLookupEscapesProductID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, _ = client.Lookup(context.Background(), "a/b")
	assert.Equal(t, "/stock/a%2Fb", gotPath)
}
