package possdk

import (
	"context"
	"net/http"
	"net/url"
)

// Notifications lists the current user's notification feed, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	resp, err := c.do(ctx, http.MethodGet, "/notifications/notifications/", nil)
	if err != nil {
		return nil, err
	}

	var feed []Notification
	if err := decodeList(resp, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	resp, err := c.do(ctx, http.MethodGet, "/notifications/notifications/unread_count/", nil)
	if err != nil {
		return 0, err
	}

	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, notificationID string) error {
	path := "/notifications/notifications/" + url.PathEscape(notificationID) + "/mark_read/"
	resp, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// MarkAllRead marks every unread notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/notifications/notifications/mark_all_read/", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
