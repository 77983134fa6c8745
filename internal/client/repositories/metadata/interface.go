// Package metadata stores small facts about the local session (who is
// logged in, the session cookie, which backend issued it) in the client
// database.
package metadata

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyUsername      = "username"
	KeySessionCookie = "session_cookie"
	KeyAPIBaseURL    = "api_base_url"
)

var ErrNotFound = errors.New("metadata key not found")

type Repository interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
