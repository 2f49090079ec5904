// Package session owns the persisted admin credential: the storage contract,
// the local admin gate over token claims, and the in-memory session controller.
package session

import "context"

// TokenKey is the single named slot the credential lives under in local storage.
const TokenKey = "admin_access_token"

// Store is the sole owner of the persisted credential.
type Store interface {
	// Read returns the stored token verbatim. A storage failure is
	// indistinguishable from an absent token: ok is false either way.
	Read(ctx context.Context) (token string, ok bool)
	// Write persists the token, replacing any prior value.
	Write(ctx context.Context, token string) error
	// Clear removes the token. Clearing an empty store succeeds silently.
	Clear(ctx context.Context) error
}
