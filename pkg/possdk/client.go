package possdk

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// CredentialStore is the persistence contract for the token pair. The Client
// reads the access token on every request and rewrites it after a refresh;
// the session layer writes the pair at login and deletes it at logout.
//
// Implementations must keep the pair invariant: both tokens present or both
// absent. A store that finds a dangling single token should report both as
// absent and remove the leftover.
type CredentialStore interface {
	// Access returns the persisted access token, or "" when absent.
	Access() (string, error)

	// Refresh returns the persisted refresh token, or "" when absent.
	Refresh() (string, error)

	// SetPair atomically stores both tokens.
	SetPair(access, refresh string) error

	// SetAccess replaces only the access token, keeping the refresh token.
	// Called after a successful refresh exchange.
	SetAccess(access string) error

	// Clear deletes both tokens.
	Clear() error
}

// Client is the gateway for all DukaPOS backend calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnSessionExpired is invoked after a failed refresh exchange has wiped
	// the credential pair. The CLI uses it to route the operator back to the
	// login entry point. May be nil.
	OnSessionExpired func()

	creds   CredentialStore
	limiter *rate.Limiter
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTPClient = h }
}

// WithRateLimit tunes the outbound token bucket. rps is the sustained
// requests-per-second rate, burst the bucket size.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSessionExpiredHook sets the forced-logout callback.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.OnSessionExpired = fn }
}

// New creates a Client rooted at baseURL. Credentials are read from and
// written to creds; pass a NewMemoryCredentials for ephemeral sessions.
func New(baseURL string, creds CredentialStore, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		creds:   creds,
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials exposes the client's credential store so the session layer can
// share the exact same pair the gateway reads.
func (c *Client) Credentials() CredentialStore {
	return c.creds
}

// MemoryCredentials is an in-memory CredentialStore for tests and short-lived
// sessions that should not outlive the process.
type MemoryCredentials struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryCredentials returns an empty in-memory store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{}
}

// Access implements CredentialStore. A dangling access token without its
// refresh partner is treated as corrupt and self-heals to absent.
func (m *MemoryCredentials) Access() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healLocked()
	return m.access, nil
}

// Refresh implements CredentialStore.
func (m *MemoryCredentials) Refresh() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healLocked()
	return m.refresh, nil
}

// SetPair implements CredentialStore.
func (m *MemoryCredentials) SetPair(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

// SetAccess implements CredentialStore.
func (m *MemoryCredentials) SetAccess(access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	return nil
}

// Clear implements CredentialStore.
func (m *MemoryCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}

func (m *MemoryCredentials) healLocked() {
	if (m.access == "") != (m.refresh == "") {
		m.access, m.refresh = "", ""
	}
}
