package possdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// TopProductsMetric selects the ranking metric for the top-products report.
type TopProductsMetric string

const (
	MetricRevenue  TopProductsMetric = "revenue"
	MetricQuantity TopProductsMetric = "quantity"
	MetricProfit   TopProductsMetric = "profit"
)

// TopProducts lists the best-performing products by the given metric.
func (c *Client) TopProducts(ctx context.Context, metric TopProductsMetric, limit int) ([]TopProduct, error) {
	q := url.Values{
		"metric": {string(metric)},
		"limit":  {strconv.Itoa(limit)},
	}

	resp, err := c.do(ctx, http.MethodGet, "/analytics/top_products/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []TopProduct
	if err := decodeList(resp, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesSummary reports completed sales bucketed by period ("day" or "month").
func (c *Client) SalesSummary(ctx context.Context, period string) ([]SalesSummaryRow, error) {
	q := url.Values{"period": {period}}

	resp, err := c.do(ctx, http.MethodGet, "/analytics/sales_summary/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []SalesSummaryRow
	if err := decodeList(resp, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProfitLoss reports revenue, cost and profit grouped by "product" or "shop".
func (c *Client) ProfitLoss(ctx context.Context, groupBy string) ([]ProfitLossRow, error) {
	q := url.Values{"group_by": {groupBy}}

	resp, err := c.do(ctx, http.MethodGet, "/analytics/profit_loss/?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []ProfitLossRow
	if err := decodeList(resp, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
