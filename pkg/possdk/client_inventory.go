package possdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchProducts lists products matching the search query. An empty query
// lists everything.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	path := "/inventory/products/"
	if query != "" {
		path += "?search=" + url.QueryEscape(query)
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := decodeList(resp, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// LowStock lists stock balances below the given threshold.
func (c *Client) LowStock(ctx context.Context, threshold int) ([]StockBalance, error) {
	path := "/inventory/stock-balances/low_stock/?threshold=" + strconv.Itoa(threshold)

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var balances []StockBalance
	if err := decodeList(resp, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}
