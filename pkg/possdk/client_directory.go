package possdk

import (
	"context"
	"net/http"
	"net/url"
)

// Tenants lists the tenants visible to the current user.
func (c *Client) Tenants(ctx context.Context) ([]Tenant, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/tenants/", nil)
	if err != nil {
		return nil, err
	}

	var tenants []Tenant
	if err := decodeList(resp, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// CreateTenant creates a tenant. Used by first-run setup.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/tenants/", req)
	if err != nil {
		return nil, err
	}

	var tenant Tenant
	if err := decodeJSON(resp, &tenant, http.StatusCreated); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Shops lists the sales-point locations of the current tenant.
func (c *Client) Shops(ctx context.Context) ([]Location, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/locations/?location_type=shop", nil)
	if err != nil {
		return nil, err
	}

	var shops []Location
	if err := decodeList(resp, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

// UserLocationRoles lists the location-role assignments of the given user.
func (c *Client) UserLocationRoles(ctx context.Context, userID string) ([]LocationRole, error) {
	path := "/auth/user-location-roles/?user_id=" + url.QueryEscape(userID)
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var roles []LocationRole
	if err := decodeList(resp, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
