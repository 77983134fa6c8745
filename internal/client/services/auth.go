// Package services contains the application services of the terminal client.
// The authentication service wraps the API client's session operations and
// persists the session cookie so a restarted client can resume it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/signkeeper/internal/client/api"
	"github.com/dmitrijs2005/signkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/signkeeper/internal/dbx"
)

var (
	// ErrNoSavedSession means there is nothing to restore.
	ErrNoSavedSession = errors.New("no saved session")
	// ErrSessionExpired means a saved session was rejected by the backend and
	// has been forgotten.
	ErrSessionExpired = errors.New("saved session expired")
)

// AuthClient is the part of the API client the service drives.
type AuthClient interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password, key string) error
	Logout(ctx context.Context) error
	VerifySession(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	SessionCookie() string
	SetSessionCookie(value string)
}

// AuthService defines the session lifecycle for the terminal client.
//
// Contract:
//   - Login: authenticate and remember the session locally.
//   - Register: create an account; does not log in.
//   - Restore: resume the remembered session, returning its username. A
//     session the backend rejects is forgotten; an unreachable backend
//     leaves it saved.
//   - Logout, DeleteAccount: end the session and forget it locally, even
//     when the backend call fails.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username string, password []byte, key string) error
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

type authService struct {
	client  AuthClient
	db      *sql.DB
	baseURL string
}

// NewAuthService binds the service to an API client, the local database and
// the base URL the client talks to. Sessions saved for another base URL are
// not restored.
func NewAuthService(client AuthClient, db *sql.DB, baseURL string) AuthService {
	return &authService{client: client, db: db, baseURL: baseURL}
}

func (a *authService) metadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := a.client.Login(ctx, username, string(password)); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	cookie := a.client.SessionCookie()
	if cookie == "" {
		// Nothing the jar would send back; keep no stale session either.
		return a.forget(ctx)
	}
	if err := a.saveSession(ctx, username, cookie); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// saveSession writes username, cookie and base URL in one transaction.
func (a *authService) saveSession(ctx context.Context, username, cookie string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeySessionCookie, []byte(cookie)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyAPIBaseURL, []byte(a.baseURL))
	})
}

func (a *authService) Register(ctx context.Context, username string, password []byte, key string) error {
	return a.client.Register(ctx, username, string(password), key)
}

func (a *authService) Restore(ctx context.Context) (string, error) {
	repo := a.metadataRepo()

	cookie, err := repo.Get(ctx, metadata.KeySessionCookie)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNoSavedSession
	}
	if err != nil {
		return "", err
	}

	savedURL, err := repo.Get(ctx, metadata.KeyAPIBaseURL)
	if err != nil && !errors.Is(err, metadata.ErrNotFound) {
		return "", err
	}
	if string(savedURL) != a.baseURL {
		return "", errors.Join(ErrNoSavedSession, a.forget(ctx))
	}

	username, err := repo.Get(ctx, metadata.KeyUsername)
	if err != nil && !errors.Is(err, metadata.ErrNotFound) {
		return "", err
	}

	a.client.SetSessionCookie(string(cookie))
	if err := a.client.VerifySession(ctx); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return "", errors.Join(ErrSessionExpired, a.forget(ctx))
		}
		// The saved session is kept for the next start.
		return "", fmt.Errorf("restore session: %w", err)
	}
	return string(username), nil
}

func (a *authService) Logout(ctx context.Context) error {
	return errors.Join(a.client.Logout(ctx), a.forget(ctx))
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	return errors.Join(a.client.DeleteAccount(ctx), a.forget(ctx))
}

// forget wipes the remembered session.
func (a *authService) forget(ctx context.Context) error {
	err := a.metadataRepo().Delete(ctx, metadata.KeyUsername, metadata.KeySessionCookie, metadata.KeyAPIBaseURL)
	if err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}
