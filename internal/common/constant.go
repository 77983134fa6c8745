// Package common contains constants and small helpers shared by the
// SignKeeper client packages.
package common

const (
	// AuthCookieName is the session cookie set by POST /auth/login.
	AuthCookieName = "auth"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"

	// AdminKeyHeader authenticates admin-only endpoints.
	AdminKeyHeader = "X-Admin-Key"

	// LoginPath is the page unauthenticated users are sent to.
	LoginPath = "/login"
	// HomePath is the page authenticated users land on.
	HomePath = "/"
)
