package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukahq/dukapos/pkg/possdk"
)

func (t *terminal) analyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Sales and profitability reports",
	}
	cmd.AddCommand(t.topProductsCmd(), t.salesSummaryCmd(), t.profitLossCmd())
	return cmd
}

func (t *terminal) topProductsCmd() *cobra.Command {
	var (
		metric string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "top-products",
		Short: "Best-performing products by revenue, quantity or profit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			switch possdk.TopProductsMetric(metric) {
			case possdk.MetricRevenue, possdk.MetricQuantity, possdk.MetricProfit:
			default:
				return fmt.Errorf("unknown metric %q, want revenue, quantity or profit", metric)
			}

			rows, err := t.app.API().TopProducts(cmd.Context(), possdk.TopProductsMetric(metric), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SKU\tPRODUCT\tQTY\tREVENUE\tPROFIT")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.ProductSKU, r.ProductName, r.TotalQuantity, r.TotalRevenue, r.TotalProfit)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&metric, "metric", "revenue", "Ranking metric (revenue, quantity, profit)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rows")
	return cmd
}

func (t *terminal) salesSummaryCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Completed sales bucketed by period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			rows, err := t.app.API().SalesSummary(cmd.Context(), period)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tSALES\tITEMS\tREVENUE\tAVG SALE")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
					r.Period, r.TotalSales, r.TotalItems, r.TotalRevenue, r.AvgSale)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&period, "period", "day", "Bucket size (day, month)")
	return cmd
}

func (t *terminal) profitLossCmd() *cobra.Command {
	var groupBy string

	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Revenue, cost and margin grouped by product or shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			rows, err := t.app.API().ProfitLoss(cmd.Context(), groupBy)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tREVENUE\tCOST\tPROFIT\tMARGIN")
			for _, r := range rows {
				group := r.ProductName
				if group == "" {
					group = r.ShopName
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\n",
					group, r.Revenue, r.Cost, r.Profit, r.Margin)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", "product", "Grouping (product, shop)")
	return cmd
}
