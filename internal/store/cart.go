package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/storage"
)

// Cart holds at most one line per product ID, each with quantity >= 1.
type Cart struct {
	observers

	storage storage.Storage
	mu      sync.RWMutex
	items   []models.CartItem
}

func NewCart(st storage.Storage) *Cart {
	return &Cart{storage: st}
}

// Load replaces the in-memory cart with the persisted one.
func (c *Cart) Load(ctx context.Context) error {
	items, err := loadJSON[[]models.CartItem](ctx, c.storage, keyCart)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Save writes the current cart.
func (c *Cart) Save(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.save(ctx)
}

func (c *Cart) save(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []models.CartItem{}
	}
	return saveJSON(ctx, c.storage, keyCart, items)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Item returns the line for productID.
func (c *Cart) Item(productID int) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(productID); i >= 0 {
		return c.items[i], true
	}
	return models.CartItem{}, false
}

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Add increments the line for p, or appends a new line at quantity 1.
func (c *Cart) Add(ctx context.Context, p models.Product) error {
	return c.mutate(ctx, func() {
		if i := c.index(p.ID); i >= 0 {
			c.items[i].Quantity++
			return
		}
		c.items = append(c.items, models.CartItem{Product: p, Quantity: 1})
	})
}

// Remove deletes the line for productID.
func (c *Cart) Remove(ctx context.Context, productID int) error {
	return c.mutate(ctx, func() {
		c.items = slices.DeleteFunc(c.items, func(it models.CartItem) bool {
			return it.ID == productID
		})
	})
}

// Decrease lowers the quantity by one but never below 1; use Remove to
// drop a line.
func (c *Cart) Decrease(ctx context.Context, productID int) error {
	return c.mutate(ctx, func() {
		if i := c.index(productID); i >= 0 && c.items[i].Quantity > 1 {
			c.items[i].Quantity--
		}
	})
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.mutate(ctx, func() {
		c.items = nil
	})
}

// Take empties the cart and returns the lines it held as one mutation, so
// nothing added concurrently is lost between the snapshot and the clear.
// The cart is left untouched when the write fails.
func (c *Cart) Take(ctx context.Context) ([]models.CartItem, error) {
	c.mu.Lock()
	taken := c.items
	c.items = nil
	err := c.save(ctx)
	if err != nil {
		c.items = taken
	}
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	c.notify()
	return taken, nil
}

// Restore puts taken lines back ahead of any added since. Quantities of a
// product present in both are summed.
func (c *Cart) Restore(ctx context.Context, items []models.CartItem) error {
	return c.mutate(ctx, func() {
		merged := slices.Clone(items)
		for _, it := range c.items {
			i := slices.IndexFunc(merged, func(m models.CartItem) bool { return m.ID == it.ID })
			if i >= 0 {
				merged[i].Quantity += it.Quantity
				continue
			}
			merged = append(merged, it)
		}
		c.items = merged
	})
}

// mutate applies fn and persists while holding the lock, so writes land in
// mutation order. Listeners run after the lock is released.
func (c *Cart) mutate(ctx context.Context, fn func()) error {
	c.mu.Lock()
	fn()
	err := c.save(ctx)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify()
	return nil
}

func (c *Cart) index(productID int) int {
	return slices.IndexFunc(c.items, func(it models.CartItem) bool {
		return it.ID == productID
	})
}
