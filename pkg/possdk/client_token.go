package possdk

import (
	"context"
	"fmt"
	"net/http"
)

// ObtainToken exchanges a username/password pair for a fresh token pair.
// The issuance endpoint is unauthenticated and never enters the 401 recovery
// path; rejected credentials surface as ErrInvalidCredentials.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (*TokenPair, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.unauthenticatedPost(ctx, "/auth/token/", body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := consumeError(resp)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, apiErr)
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshToken trades a refresh token for a new access token. The refresh
// endpoint itself is never retried: a rejection means the session is over.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*TokenPair, error) {
	body := map[string]string{
		"refresh": refresh,
	}

	resp, err := c.unauthenticatedPost(ctx, "/auth/token/refresh/", body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := consumeError(resp)
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, apiErr)
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// unauthenticatedPost sends a POST without a bearer credential and without
// the recovery path. Used only by the token endpoints.
func (c *Client) unauthenticatedPost(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPost, path, payload, "")
}
