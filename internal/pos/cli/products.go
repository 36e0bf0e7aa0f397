package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (t *terminal) productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products [query]",
		Short: "Search the product catalogue by name, SKU or barcode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			products, err := t.app.API().SearchProducts(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Println("no products found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SKU\tNAME\tCATEGORY\tUNIT\tACTIVE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
					p.SKU, p.Name, p.CategoryName, p.UnitOfMeasure, p.IsActive)
			}
			return w.Flush()
		},
	}
}
