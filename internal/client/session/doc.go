// Package session holds the client-visible authentication state: whether a
// session is active and who the current user is.
//
// The state lives in a Store that is passed explicitly to whatever owns the
// UI session (the API client, the page loaders, the terminal client) instead
// of being a process-wide singleton. Observers register with Subscribe and are
// notified after every mutation.
//
// Mutation is gated by an Environment: only an Interactive environment owns a
// Store worth updating. Code running in a Prerender environment must leave the
// state untouched; Discard is a Store that ignores every write for that path.
package session
