package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dukahq/dukapos/pkg/possdk"
)

// SalesProcessor submits a completed cart to the sales collaborator.
// *possdk.Client satisfies it.
type SalesProcessor interface {
	ProcessSale(ctx context.Context, req possdk.SaleRequest) (*possdk.Sale, error)
}

// ValidationError reports a checkout precondition failure. It is surfaced to
// the operator as a message, never treated as an infrastructure fault.
type ValidationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Reason }

// Checkout validates the cart, submits it as a sale with a single cash
// payment equal to the cart total, and clears the cart on success. A failed
// submission leaves the cart untouched so the operator can retry.
func (c *Cart) Checkout(ctx context.Context, proc SalesProcessor, shopID string) (*possdk.Sale, error) {
	c.mu.Lock()

	if shopID == "" {
		c.mu.Unlock()
		return nil, &ValidationError{Reason: "no shop selected"}
	}
	if len(c.lines) == 0 {
		c.mu.Unlock()
		return nil, &ValidationError{Reason: "cart is empty"}
	}

	items := make([]possdk.SaleItemInput, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, possdk.SaleItemInput{
			Product:        l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.Discount,
		})
	}
	total := c.totalLocked()
	ref := c.ref
	c.mu.Unlock()

	req := possdk.SaleRequest{
		Shop:  shopID,
		Items: items,
		Payments: []possdk.PaymentInput{
			{PaymentMethod: "cash", Amount: total},
		},
		Notes: "terminal ref " + ref.String(),
	}

	sale, err := proc.ProcessSale(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("process sale: %w", err)
	}

	c.Clear()
	return sale, nil
}

// zeroIfNeg is a guard for price-rule inputs; negative unit prices are
// clamped to zero before they reach a line.
func zeroIfNeg(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
