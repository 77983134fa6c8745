package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
)

const (
	loginEndpoint    = "/auth/login"
	registerEndpoint = "/auth/register"
	logoutEndpoint   = "/auth/logout"
)

// Login opens a session. In the interactive environment it then loads the
// current user into the store; if that fetch fails the store still becomes
// authenticated, with a placeholder user that has only the username.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.Call(ctx, loginEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.LoginPayload{Username: username, Password: password},
	})
	if err != nil {
		return err
	}

	if !c.env.IsInteractive() {
		return nil
	}

	user, err := c.GetCurrentUser(ctx)
	if err != nil {
		c.log.Warn(ctx, "user fetch after login failed", "username", username, "error", err)
		user = &models.User{Username: username}
	}
	c.store.SetAuthenticated(true)
	c.store.SetUser(user)
	return nil
}

// Register creates an account using an invitation key. It does not log in.
func (c *Client) Register(ctx context.Context, username, password, key string) error {
	_, err := c.Call(ctx, registerEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.RegisterPayload{Username: username, Password: password, Key: key},
	})
	return err
}

// Logout ends the session. The store is cleared whatever the outcome; when
// the request fails the auth cookie is dropped locally as well.
func (c *Client) Logout(ctx context.Context) (err error) {
	defer func() {
		if !c.env.IsInteractive() {
			return
		}
		if err != nil {
			c.dropSessionCookie()
		}
		c.store.Clear()
	}()

	_, err = c.Call(ctx, logoutEndpoint, Request{Method: http.MethodPost})
	return err
}

// CheckAuth reports whether the session is valid by fetching the current
// user, and records the outcome in the store.
func (c *Client) CheckAuth(ctx context.Context) bool {
	return c.VerifySession(ctx) == nil
}

// VerifySession is CheckAuth with the cause kept: errors.Is(err,
// ErrUnauthorized) means the backend rejected the session, ErrUnavailable
// that it could not be asked.
func (c *Client) VerifySession(ctx context.Context) error {
	user, err := c.GetCurrentUser(ctx)
	if !c.env.IsInteractive() {
		return err
	}
	if err != nil {
		c.store.SetAuthenticated(false)
		c.store.SetUser(nil)
		return err
	}
	c.store.SetAuthenticated(true)
	c.store.SetUser(user)
	return nil
}

// DeleteAccount deletes the logged-in account and clears the store even if
// the request fails.
func (c *Client) DeleteAccount(ctx context.Context) error {
	defer func() {
		if c.env.IsInteractive() {
			c.store.Clear()
		}
	}()

	_, err := c.Call(ctx, meEndpoint, Request{Method: http.MethodDelete})
	return err
}
