// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package store

import (
	"sync"
)

// CartItem is a product added to the shopping cart
type CartItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Cart is an in-memory shopping cart. It is the only mutable store in the
// system and is safe for concurrent use across sessions.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts an item in the cart, merging quantities for repeated names
func (c *Cart) Add(name string, price float64, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Name == name {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, CartItem{Name: name, Price: price, Quantity: quantity})
}

// Items returns a copy of the cart contents
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Total returns the current cart total
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Carts holds one cart per session so concurrent customers never see
// each other's items.
type Carts struct {
	mu        sync.Mutex
	bySession map[string]*Cart
}

func NewCarts() *Carts {
	return &Carts{bySession: make(map[string]*Cart)}
}

// Get returns the cart for a session, creating it on first use
func (c *Carts) Get(sessionID string) *Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart, ok := c.bySession[sessionID]
	if !ok {
		cart = NewCart()
		c.bySession[sessionID] = cart
	}
	return cart
}
