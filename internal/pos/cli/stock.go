package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (t *terminal) stockCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "List products at or below the low-stock threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			balances, err := t.app.API().LowStock(cmd.Context(), threshold)
			if err != nil {
				return err
			}
			if len(balances) == 0 {
				fmt.Printf("nothing at or below %d on hand\n", threshold)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SKU\tPRODUCT\tLOCATION\tON HAND")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					b.ProductSKU, b.ProductName, b.LocationName, b.QuantityOnHand)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 10, "On-hand quantity at or below which a product is low")
	return cmd
}
