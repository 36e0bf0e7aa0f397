package possdk

import (
	"context"
	"net/http"
)

// Me fetches the identity of the user the current credential belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/users/me/", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// MeWith fetches the identity using the supplied access token instead of the
// persisted one, without the 401 recovery path. The login flow uses it to
// validate a freshly issued pair before anything is persisted.
func (c *Client) MeWith(ctx context.Context, access string) (*User, error) {
	resp, err := c.send(ctx, http.MethodGet, "/auth/users/me/", nil, access)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a backend user. Used by first-run setup.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/users/", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}
