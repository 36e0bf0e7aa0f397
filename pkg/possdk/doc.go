/*
Package possdk provides a client SDK for the DukaPOS point-of-sale backend.

# Overview

The SDK wraps the backend's REST API behind a single Client. Every outbound
request flows through one chokepoint which attaches the persisted bearer
credential and transparently recovers from an expired access token.

	creds := possdk.NewMemoryCredentials()
	client := possdk.New("https://pos.example.com/api", creds)

	pair, err := client.ObtainToken(ctx, "attendant", "secret")
	if err != nil {
		// bad credentials surface as possdk.ErrInvalidCredentials
	}

	me, err := client.Me(ctx)

# Credential Lifecycle

The Client never owns tokens directly. It reads and writes them through a
CredentialStore, so the same Client works against an in-memory store (tests),
or the SQLite keystore the CLI uses. The store's contract is that the access
and refresh tokens fall together: both present or both absent.

# 401 Recovery

On an authorization failure the Client performs exactly one recovery attempt:
it exchanges the persisted refresh token for a new access token, persists it,
and replays the original request once with the new credential. A second 401
after the replay is returned to the caller untouched. If the refresh exchange
itself fails, both tokens are deleted, the OnSessionExpired hook fires, and
the original failure is propagated.

# Pagination

The backend serves list endpoints either as a bare JSON array or wrapped in a
`{"results": [...]}` envelope depending on pagination settings. All list
operations accept both shapes.

# Rate Limiting

Outbound requests pass through a client-side token bucket (golang.org/x/time)
so a busy terminal cannot hammer the backend. Tune it with WithRateLimit.
*/
package possdk
