package possdk

import (
	"context"
	"net/http"
)

// ProcessSale submits a complete sale (items plus payments) for processing.
// The backend creates the sale, decrements stock and records the payments in
// one transaction; there is no partial-failure mode visible to the client.
func (c *Client) ProcessSale(ctx context.Context, req SaleRequest) (*Sale, error) {
	resp, err := c.do(ctx, http.MethodPost, "/sales/sales/process/", req)
	if err != nil {
		return nil, err
	}

	var sale Sale
	if err := decodeJSON(resp, &sale, http.StatusCreated); err != nil {
		return nil, err
	}
	return &sale, nil
}
