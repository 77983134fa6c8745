// Package loaders produces the data each client page needs before it is
// shown. A loader checks the session, calls the API and either returns page
// data or a *Redirect (as the error value) telling the caller where to go
// instead.
package loaders
