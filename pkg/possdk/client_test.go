package possdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedCreds(t *testing.T, access, refresh string) *MemoryCredentials {
	t.Helper()
	creds := NewMemoryCredentials()
	require.NoError(t, creds.SetPair(access, refresh))
	return creds
}

func TestBearerInjection(t *testing.T) {
	t.Parallel()

	t.Run("attaches persisted access token", func(t *testing.T) {
		var seen string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "amina"})
		}))
		defer srv.Close()

		client := New(srv.URL, seedCreds(t, "tok-abc", "ref-abc"))
		user, err := client.Me(context.Background())
		require.NoError(t, err)
		require.Equal(t, "amina", user.Username)
		require.Equal(t, "Bearer tok-abc", seen)
	})

	t.Run("no token sends unauthenticated", func(t *testing.T) {
		var seen string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "not allowed"})
		}))
		defer srv.Close()

		client := New(srv.URL, NewMemoryCredentials())
		_, err := client.Me(context.Background())
		require.Error(t, err)
		require.Empty(t, seen)
	})
}

func TestSingleRetryOn401(t *testing.T) {
	t.Parallel()

	t.Run("one refresh and one replay", func(t *testing.T) {
		var meCalls, refreshCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			refreshCalls.Add(1)
			var body struct {
				Refresh string `json:"refresh"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "ref-1", body.Refresh)
			_ = json.NewEncoder(w).Encode(TokenPair{Access: "tok-2"})
		})
		mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
			if meCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
				return
			}
			require.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "amina"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		creds := seedCreds(t, "tok-1", "ref-1")
		client := New(srv.URL, creds)

		user, err := client.Me(context.Background())
		require.NoError(t, err)
		require.Equal(t, "amina", user.Username)
		require.EqualValues(t, 1, refreshCalls.Load())
		require.EqualValues(t, 2, meCalls.Load())

		// The rotated access token is persisted, the refresh token kept.
		access, err := creds.Access()
		require.NoError(t, err)
		require.Equal(t, "tok-2", access)
		refresh, err := creds.Refresh()
		require.NoError(t, err)
		require.Equal(t, "ref-1", refresh)
	})

	t.Run("second 401 propagates without second refresh", func(t *testing.T) {
		var refreshCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			refreshCalls.Add(1)
			_ = json.NewEncoder(w).Encode(TokenPair{Access: "tok-2"})
		})
		mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "still no"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := New(srv.URL, seedCreds(t, "tok-1", "ref-1"))

		_, err := client.Me(context.Background())
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.IsUnauthorized())
		require.EqualValues(t, 1, refreshCalls.Load())
	})

	t.Run("refresh failure wipes pair and fires hook", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "refresh token expired"})
		})
		mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		creds := seedCreds(t, "tok-1", "ref-1")
		expired := false
		client := New(srv.URL, creds, WithSessionExpiredHook(func() { expired = true }))

		_, err := client.Me(context.Background())
		require.Error(t, err)

		// The original 401, not the refresh failure, reaches the caller.
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "token expired", apiErr.Detail)

		require.True(t, expired)
		access, _ := creds.Access()
		refresh, _ := creds.Refresh()
		require.Empty(t, access)
		require.Empty(t, refresh)
	})

	t.Run("missing refresh token cannot recover", func(t *testing.T) {
		var refreshCalls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
			refreshCalls.Add(1)
		})
		mux.HandleFunc("/auth/users/me/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		// Dangling access token with no refresh partner. The store heals it
		// to absent, the request goes out unauthenticated and the 401 cannot
		// be recovered.
		creds := NewMemoryCredentials()
		require.NoError(t, creds.SetAccess("tok-dangling"))

		client := New(srv.URL, creds)
		_, err := client.Me(context.Background())
		require.Error(t, err)
		require.EqualValues(t, 0, refreshCalls.Load())
	})
}

func TestObtainToken(t *testing.T) {
	t.Parallel()

	t.Run("success returns pair without persisting", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/token/", r.URL.Path)
			require.Empty(t, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(TokenPair{Access: "a1", Refresh: "r1"})
		}))
		defer srv.Close()

		creds := NewMemoryCredentials()
		client := New(srv.URL, creds)

		pair, err := client.ObtainToken(context.Background(), "amina", "pw")
		require.NoError(t, err)
		require.Equal(t, "a1", pair.Access)
		require.Equal(t, "r1", pair.Refresh)

		// Persistence is the session layer's call, not the gateway's.
		access, _ := creds.Access()
		require.Empty(t, access)
	})

	t.Run("bad credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
		}))
		defer srv.Close()

		client := New(srv.URL, NewMemoryCredentials())
		_, err := client.ObtainToken(context.Background(), "amina", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestDecodeList(t *testing.T) {
	t.Parallel()

	t.Run("paginated envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count":   2,
				"results": []Tenant{{ID: "t1", Name: "Duka One"}, {ID: "t2", Name: "Duka Two"}},
			})
		}))
		defer srv.Close()

		client := New(srv.URL, seedCreds(t, "tok", "ref"))
		tenants, err := client.Tenants(context.Background())
		require.NoError(t, err)
		require.Len(t, tenants, 2)
		require.Equal(t, "Duka One", tenants[0].Name)
	})

	t.Run("bare array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode([]Tenant{{ID: "t1", Name: "Duka One"}})
		}))
		defer srv.Close()

		client := New(srv.URL, seedCreds(t, "tok", "ref"))
		tenants, err := client.Tenants(context.Background())
		require.NoError(t, err)
		require.Len(t, tenants, 1)
	})

	t.Run("neither shape is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"unexpected": "shape"})
		}))
		defer srv.Close()

		client := New(srv.URL, seedCreds(t, "tok", "ref"))
		_, err := client.Tenants(context.Background())
		require.Error(t, err)
	})
}

func TestMemoryCredentialsHealsDanglingToken(t *testing.T) {
	t.Parallel()

	creds := NewMemoryCredentials()
	require.NoError(t, creds.SetAccess("orphan"))

	access, err := creds.Access()
	require.NoError(t, err)
	require.Empty(t, access)

	refresh, err := creds.Refresh()
	require.NoError(t, err)
	require.Empty(t, refresh)
}
