// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package stock provides the client for the remote stock-lookup service.
package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// ErrNotFound is returned when the service has no entry for the product
var ErrNotFound = errors.New("product not found")

// Info is a stock snapshot for a single product
type Info struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	InStock   bool    `json:"in_stock"`
	Warehouse string  `json:"warehouse"`
}

// Client calls the remote stock service. A single attempt per lookup with
// a bounded timeout; retries belong to the transport, not here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the stock snapshot for a product ID
func (c *Client) Lookup(ctx context.Context, productID string) (*Info, error) {
	endpoint := fmt.Sprintf("%s/stock/%s", c.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "building stock request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "stock lookup for %s", productID)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("stock service returned status %d", resp.StatusCode)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, pkgerrors.Wrap(err, "decoding stock response")
	}
	return &info, nil
}
