// Package cart holds the in-memory line items of the sales terminal. One
// cart per terminal, no persistence across restarts; pricing arithmetic is
// decimal throughout because money is involved.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dukahq/dukapos/pkg/idx"
	"github.com/dukahq/dukapos/pkg/possdk"
)

// Line is one product entry in the cart. Lines are keyed by ProductID; the
// same product never occupies two rows.
type Line struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// Total is the line total: unit price times quantity, minus the discount.
func (l Line) Total() decimal.Decimal {
	qty := decimal.NewFromInt(int64(l.Quantity))
	return l.UnitPrice.Mul(qty).Sub(l.Discount)
}

// Cart is an ordered collection of Lines with a ULID reference that rotates
// on every successful checkout.
type Cart struct {
	mu    sync.Mutex
	ref   idx.ID
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{ref: idx.New()}
}

// Ref returns the cart's terminal reference.
func (c *Cart) Ref() idx.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ref
}

// Add puts one unit of the product in the cart: an existing line is
// incremented, otherwise a new line is appended with quantity 1. Pricing
// starts at zero; the price-rule collaborator fills it in separately.
func (c *Cart) Add(p possdk.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Quantity:  1,
		UnitPrice: decimal.Zero,
		Discount:  decimal.Zero,
	})
}

// UpdateQuantity applies delta to the matching line. A resulting quantity of
// zero or below removes the line outright; a line is never retained at zero.
// Unknown product IDs are ignored.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}

		next := c.lines[i].Quantity + delta
		if next <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		c.lines[i].Quantity = next
		return
	}
}

// Remove deletes the matching line unconditionally.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetPricing updates the unit price and discount of the matching line. This
// is the entry point for the external price-rule collaborator.
func (c *Cart) SetPricing(productID string, unitPrice, discount decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].UnitPrice = zeroIfNeg(unitPrice)
			c.lines[i].Discount = zeroIfNeg(discount)
			return
		}
	}
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total sums all line totals. An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Cart) totalLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Clear empties the cart and rotates its reference.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cart) clearLocked() {
	c.lines = nil
	c.ref = idx.New()
}
