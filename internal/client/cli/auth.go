package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/signkeeper/internal/client/api"
	"github.com/dmitrijs2005/signkeeper/internal/client/loaders"
	"github.com/dmitrijs2005/signkeeper/internal/client/services"
	"github.com/dmitrijs2005/signkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, a password and an invite key and creates
// the account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	key, err := getSimpleText(a.reader, "Enter invite key", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, username, password, key); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now.")
	return nil
}

// Login prompts for credentials and starts a session. Users that already
// have a valid session are told so and nothing else happens.
func (a *App) Login(ctx context.Context) error {
	err := a.pages.Login(ctx)
	var redirect *loaders.Redirect
	if errors.As(err, &redirect) {
		fmt.Fprintln(a.out, "Already logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, password); err != nil {
		a.log.Info(ctx, "login unsuccessful", "username", username, "error", err)
		return err
	}

	a.log.Info(ctx, "login successful", "username", username)
	fmt.Fprintf(a.out, "Logged in as %s.\n", username)
	return nil
}

// Logout ends the session and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return a.auth.Logout(ctx)
}

// DeleteAccount deletes the logged-in account after confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	ok, err := Confirm(a.reader, "Delete your account permanently?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted.")
	return nil
}

// restoreSession resumes the session saved by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	username, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Welcome back, %s.\n", username)
	case errors.Is(err, services.ErrNoSavedSession):
	case errors.Is(err, services.ErrSessionExpired):
		fmt.Fprintln(a.out, "Saved session expired, please log in again.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Backend unreachable, the saved session is kept for the next start.")
	default:
		a.log.Warn(ctx, "restoring session failed", "error", err)
	}
}
