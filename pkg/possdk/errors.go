package possdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrInvalidCredentials reports a rejected username/password pair at the
// token issuance endpoint. Callers surface it as an inline form message, not
// a fault.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrSessionExpired reports that the persisted refresh token was missing,
// invalid or expired, so the session cannot be recovered without a fresh
// login. By the time a caller sees it the credential pair is already gone.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the backend, decoded from the DRF
// error body where one was present.
type APIError struct {
	// StatusCode is the HTTP status of the failing response.
	StatusCode int

	// Code is the machine-readable error code, when the backend sent one.
	Code string

	// Detail is the human-readable message.
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether the backend rejected the bearer credential.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// parseAPIError decodes a DRF-style error body into an APIError. The backend
// emits three shapes: a detail object, a code/message object, and per-field
// validation maps. Anything unrecognised falls back to the raw status text.
func parseAPIError(statusCode int, body []byte) *APIError {
	// {"detail": "..."} with an optional machine code
	var detail struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		return &APIError{StatusCode: statusCode, Code: detail.Code, Detail: detail.Detail}
	}

	// {"code": "...", "message": "..."} or {"error": "..."}
	var coded struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(body, &coded); err == nil {
		if coded.Message != "" {
			return &APIError{StatusCode: statusCode, Code: coded.Code, Detail: coded.Message}
		}
		if coded.Err != "" {
			return &APIError{StatusCode: statusCode, Detail: coded.Err}
		}
	}

	// Field validation map: {"field": ["msg", ...], ...}
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, name+": "+strings.Join(fields[name], "; "))
		}
		return &APIError{StatusCode: statusCode, Detail: strings.Join(parts, ", ")}
	}

	return &APIError{
		StatusCode: statusCode,
		Detail:     http.StatusText(statusCode),
	}
}
