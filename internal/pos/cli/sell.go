package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dukahq/dukapos/internal/pos/cart"
	"github.com/dukahq/dukapos/pkg/possdk"
)

func (t *terminal) sellCmd() *cobra.Command {
	var (
		shopID string
		items  []string
		prices []string
	)

	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Ring up a cash sale",
		Long: `Ring up a cash sale. Items are looked up by SKU and priced per unit:

  pos sell --shop SHOP_ID --item CHAI-001=2 --price CHAI-001=50.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			unitPrices, err := parsePrices(prices)
			if err != nil {
				return err
			}

			basket := cart.New()
			for _, spec := range items {
				if err := t.addItem(cmd.Context(), basket, spec, unitPrices); err != nil {
					return err
				}
			}

			sale, err := basket.Checkout(cmd.Context(), t.app.API(), shopID)
			if err != nil {
				return err
			}

			fmt.Printf("sale %s processed, total %s (%s)\n",
				sale.SaleNumber, sale.TotalAmount, sale.State)
			return nil
		},
	}

	cmd.Flags().StringVar(&shopID, "shop", "", "Shop location the sale belongs to")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Cart line as SKU=QTY (repeatable)")
	cmd.Flags().StringArrayVar(&prices, "price", nil, "Unit price as SKU=AMOUNT (repeatable)")
	return cmd
}

// addItem resolves one SKU=QTY spec against the catalogue and loads it into
// the cart at the supplied unit price.
func (t *terminal) addItem(ctx context.Context, basket *cart.Cart, spec string, unitPrices map[string]decimal.Decimal) error {
	sku, qtyStr, err := splitSpec(spec)
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty < 1 {
		return fmt.Errorf("invalid quantity in %q", spec)
	}

	product, err := t.lookupSKU(ctx, sku)
	if err != nil {
		return err
	}
	price, ok := unitPrices[strings.ToUpper(sku)]
	if !ok {
		return fmt.Errorf("no --price given for %s", sku)
	}

	basket.Add(*product)
	if qty > 1 {
		basket.UpdateQuantity(product.ID, qty-1)
	}
	basket.SetPricing(product.ID, price, decimal.Zero)
	return nil
}

func (t *terminal) lookupSKU(ctx context.Context, sku string) (*possdk.Product, error) {
	products, err := t.app.API().SearchProducts(ctx, sku)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if strings.EqualFold(products[i].SKU, sku) {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("no product with SKU %s", sku)
}

func parsePrices(specs []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(specs))
	for _, spec := range specs {
		sku, amountStr, err := splitSpec(spec)
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", spec, err)
		}
		prices[strings.ToUpper(sku)] = amount
	}
	return prices, nil
}

func splitSpec(spec string) (key, value string, err error) {
	key, value, ok := strings.Cut(spec, "=")
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("expected KEY=VALUE, got %q", spec)
	}
	return key, value, nil
}
