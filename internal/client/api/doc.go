// Package api is the typed HTTP client for the signkeeper backend.
//
// # Overview
//
// Every backend operation is a method on Client. All of them go through
// Client.Call, which
//  1. resolves the endpoint against the base URL (including the /api prefix),
//  2. JSON-encodes the body and sets JSON and X-Request-Id headers (caller
//     headers win),
//  3. sends the session cookie from the client's cookie jar,
//  4. turns non-2xx responses into *APIError and 2xx responses into a
//     *Response that is either JSON or raw text.
//
// # Auth state
//
// The client keeps a session.Store in sync with what the backend says. A 401
// from any endpoint except /auth/login clears the store; Login, CheckAuth,
// UpdateUserProfile and SaveSignature write the user into it; Logout and
// DeleteAccount clear it. All of this happens only when the client runs in
// session.Interactive; in session.Prerender the store is never touched.
//
// # Errors
//
// Callers match with errors.Is / errors.As:
//
//   - *APIError for any non-2xx response. It unwraps to ErrUnauthorized
//     (401, 403), ErrNotFound (404) or ErrUnavailable (5xx).
//   - ErrUnavailable wraps transport failures.
//   - ErrNotJSON when a JSON body was expected but the server sent text.
//   - ErrInvalidID, ErrInvalidToken, ErrInvalidDate for arguments rejected
//     before any request is sent.
package api
