package possdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs an authenticated request with the single-retry recovery
// contract: a 401 triggers at most one refresh exchange and one replay of the
// original request. The request body is buffered up front so the replay sends
// identical bytes.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	access, err := c.creds.Access()
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	resp, err := c.send(ctx, method, path, payload, access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// The bearer credential was rejected. Hold on to the original failure so
	// it can be propagated if recovery is impossible.
	origErr := consumeError(resp)

	newAccess, refreshErr := c.refreshAccess(ctx)
	if refreshErr != nil {
		c.log.Warn("token refresh failed, clearing credentials", "err", refreshErr)
		_ = c.creds.Clear()
		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
		return nil, origErr
	}

	c.log.Debug("access token refreshed, replaying request", "method", method, "path", path)

	// One replay only. If this also comes back 401 the caller sees it as-is.
	return c.send(ctx, method, path, payload, newAccess)
}

// marshalBody encodes a request body once so retries send identical bytes.
func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return payload, nil
}

// send executes a single HTTP request. An empty access token sends the
// request unauthenticated; the server rejects it as needed.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, access string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	return resp, nil
}

// refreshAccess exchanges the persisted refresh token for a new access token
// and persists it. A missing refresh token fails immediately.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	refresh, err := c.creds.Refresh()
	if err != nil {
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	if refresh == "" {
		return "", ErrSessionExpired
	}

	pair, err := c.RefreshToken(ctx, refresh)
	if err != nil {
		return "", err
	}
	if err := c.creds.SetAccess(pair.Access); err != nil {
		return "", fmt.Errorf("persist access token: %w", err)
	}
	return pair.Access, nil
}

// decodeJSON decodes a response body into target, mapping non-expected
// statuses to an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseAPIError(resp.StatusCode, raw)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeList decodes a list response into target, accepting either a bare
// JSON array or the paginated {"results": [...]} envelope.
func decodeList(resp *http.Response, target any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, raw)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if envelope.Results == nil {
		return fmt.Errorf("decode response: list body has neither array nor results envelope")
	}
	if err := json.Unmarshal(envelope.Results, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// consumeError drains a failing response into an *APIError and closes it.
func consumeError(resp *http.Response) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return parseAPIError(resp.StatusCode, raw)
}
