package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dukahq/dukapos/pkg/possdk"
)

type backend struct {
	tokenStatus int
	meStatus    int
	meCalls     atomic.Int32
	tokenCalls  atomic.Int32
}

func (b *backend) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/", func(w http.ResponseWriter, r *http.Request) {
		b.tokenCalls.Add(1)
		if b.tokenStatus != 0 {
			w.WriteHeader(b.tokenStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
			return
		}
		_ = json.NewEncoder(w).Encode(possdk.TokenPair{Access: "access-1", Refresh: "refresh-1"})
	})
	mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
		b.meCalls.Add(1)
		if b.meStatus != 0 {
			w.WriteHeader(b.meStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token invalid"})
			return
		}
		_ = json.NewEncoder(w).Encode(possdk.User{ID: "u1", Username: "amina", IsStaff: true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T, b *backend) (*Store, *possdk.MemoryCredentials) {
	t.Helper()
	creds := possdk.NewMemoryCredentials()
	api := possdk.New(b.server(t).URL, creds)
	return New(api, nil), creds
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success persists pair and authenticates", func(t *testing.T) {
		store, creds := newStore(t, &backend{})

		require.NoError(t, store.Login(context.Background(), "amina", "pw"))
		require.True(t, store.IsAuthenticated())
		require.False(t, store.IsLoading())
		require.Equal(t, "amina", store.User().Username)

		access, _ := creds.Access()
		refresh, _ := creds.Refresh()
		require.Equal(t, "access-1", access)
		require.Equal(t, "refresh-1", refresh)
	})

	t.Run("bad credentials write nothing", func(t *testing.T) {
		store, creds := newStore(t, &backend{tokenStatus: http.StatusUnauthorized})

		err := store.Login(context.Background(), "amina", "wrong")
		require.ErrorIs(t, err, possdk.ErrInvalidCredentials)
		require.False(t, store.IsAuthenticated())
		require.False(t, store.IsLoading())

		access, _ := creds.Access()
		refresh, _ := creds.Refresh()
		require.Empty(t, access)
		require.Empty(t, refresh)
	})

	t.Run("identity fetch failure writes nothing", func(t *testing.T) {
		store, creds := newStore(t, &backend{meStatus: http.StatusInternalServerError})

		err := store.Login(context.Background(), "amina", "pw")
		require.Error(t, err)
		require.False(t, store.IsAuthenticated())

		access, _ := creds.Access()
		require.Empty(t, access)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	b := &backend{}
	store, creds := newStore(t, b)
	require.NoError(t, store.Login(context.Background(), "amina", "pw"))

	store.Logout()

	require.False(t, store.IsAuthenticated())
	require.Nil(t, store.User())
	access, _ := creds.Access()
	refresh, _ := creds.Refresh()
	require.Empty(t, access)
	require.Empty(t, refresh)
}

func TestCheckAuth(t *testing.T) {
	t.Parallel()

	t.Run("no token means no network call", func(t *testing.T) {
		b := &backend{}
		store, _ := newStore(t, b)

		require.NoError(t, store.CheckAuth(context.Background()))
		require.False(t, store.IsAuthenticated())
		require.EqualValues(t, 0, b.meCalls.Load())
	})

	t.Run("valid pair restores the session", func(t *testing.T) {
		b := &backend{}
		store, creds := newStore(t, b)
		require.NoError(t, creds.SetPair("access-1", "refresh-1"))

		require.NoError(t, store.CheckAuth(context.Background()))
		require.True(t, store.IsAuthenticated())
		require.Equal(t, "amina", store.User().Username)
	})

	t.Run("rejected pair self-heals to absent", func(t *testing.T) {
		b := &backend{meStatus: http.StatusForbidden}
		store, creds := newStore(t, b)
		require.NoError(t, creds.SetPair("stale-access", "stale-refresh"))

		require.NoError(t, store.CheckAuth(context.Background()))
		require.False(t, store.IsAuthenticated())
		require.Nil(t, store.User())

		access, _ := creds.Access()
		refresh, _ := creds.Refresh()
		require.Empty(t, access)
		require.Empty(t, refresh)
	})

	t.Run("logout then checkAuth stays offline", func(t *testing.T) {
		b := &backend{}
		store, _ := newStore(t, b)
		require.NoError(t, store.Login(context.Background(), "amina", "pw"))
		meCallsAfterLogin := b.meCalls.Load()

		store.Logout()
		require.NoError(t, store.CheckAuth(context.Background()))

		require.False(t, store.IsAuthenticated())
		require.Equal(t, meCallsAfterLogin, b.meCalls.Load())
	})
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	t.Run("reads exp claim without verifying", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		signed, err := token.SignedString([]byte("irrelevant"))
		require.NoError(t, err)

		creds := possdk.NewMemoryCredentials()
		require.NoError(t, creds.SetPair(signed, "refresh"))
		store := New(possdk.New("http://unused", creds), nil)

		got, ok := store.TokenExpiry()
		require.True(t, ok)
		require.WithinDuration(t, exp, got, time.Second)
	})

	t.Run("no token", func(t *testing.T) {
		store := New(possdk.New("http://unused", possdk.NewMemoryCredentials()), nil)
		_, ok := store.TokenExpiry()
		require.False(t, ok)
	})
}
