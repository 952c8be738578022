// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package store

import (
	"encoding/json"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Product is a single entry in the product catalog
type Product struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"in_stock"`
}

// Catalog is the read-only product catalog, loaded once at startup
type Catalog struct {
	products []Product
}

func NewCatalog(products []Product) *Catalog {
	return &Catalog{products: products}
}

// LoadCatalog reads the product catalog from a JSON file containing a list of products
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading product catalog %s", path)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing product catalog %s", path)
	}

	log.Info().Int("products", len(products)).Str("path", path).Msg("loaded product catalog")
	return &Catalog{products: products}, nil
}

// Find matches a free-form item name against the catalog.
// Either the query appears in the product name or the product name appears
// in the query, case-insensitively.
func (c *Catalog) Find(name string) (Product, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Product{}, false
	}
	for _, product := range c.products {
		productName := strings.ToLower(product.Name)
		if strings.Contains(productName, query) || strings.Contains(query, productName) {
			return product, true
		}
	}
	return Product{}, false
}

// Products returns all catalog entries
func (c *Catalog) Products() []Product {
	return c.products
}
