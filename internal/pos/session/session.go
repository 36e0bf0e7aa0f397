// Package session owns the client-side authentication lifecycle: the current
// user, the authenticated flag and the persistence of the credential pair.
// It is the only writer of the pair besides the gateway's refresh path.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dukahq/dukapos/pkg/possdk"
)

// Store holds the session state for one terminal. Methods are safe for
// concurrent use, though the CLI drives it from a single goroutine.
type Store struct {
	api   *possdk.Client
	creds possdk.CredentialStore
	log   *slog.Logger

	mu            sync.RWMutex
	user          *possdk.User
	authenticated bool
	loading       bool
}

// New creates an empty, unauthenticated session backed by the client's
// credential store.
func New(api *possdk.Client, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		api:   api,
		creds: api.Credentials(),
		log:   log,
	}
}

// Login authenticates with a username/password pair. The identity is
// verified with the fresh access token before the pair is persisted, so a
// failed login never writes a token: the pair lands durably only once the
// whole exchange has succeeded. Bad credentials surface as
// possdk.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	pair, err := s.api.ObtainToken(ctx, username, password)
	if err != nil {
		return err
	}

	user, err := s.api.MeWith(ctx, pair.Access)
	if err != nil {
		return fmt.Errorf("fetch identity: %w", err)
	}

	if err := s.creds.SetPair(pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	s.log.Info("logged in", "username", user.Username)
	return nil
}

// Logout deletes both persisted tokens and resets the session. Pure local
// invalidation, no network call.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.log.Warn("clearing credentials failed", "err", err)
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	s.log.Info("logged out")
}

// CheckAuth restores the session from a persisted credential pair. With no
// access token present it settles unauthenticated without touching the
// network. A failed identity fetch deletes both tokens and resets the
// session; this is the sole self-healing path for a stale or corrupt
// credential, so the failure is absorbed rather than returned.
func (s *Store) CheckAuth(ctx context.Context) error {
	access, err := s.creds.Access()
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	if access == "" {
		s.mu.Lock()
		s.authenticated = false
		s.mu.Unlock()
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Debug("stored credential rejected, clearing", "err", err)
		_ = s.creds.Clear()

		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// User returns the authenticated user, or nil.
func (s *Store) User() *possdk.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether an identity fetch has succeeded in this
// process lifetime. Token presence alone never sets it.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsLoading reports whether a login is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// TokenExpiry reports when the persisted access token expires, read from its
// unverified exp claim. Verification is the server's job; the client only
// displays it. Returns false when no token is persisted or the claim is
// unreadable.
func (s *Store) TokenExpiry() (time.Time, bool) {
	access, err := s.creds.Access()
	if err != nil || access == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
