package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	meEndpoint        = "/users/me"
	usersEndpoint     = "/users"
	signEndpoint      = "/sign"
	updateJWTEndpoint = "/users/me/update-jwt"
)

// GetCurrentUser returns the logged-in user.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	u, err := callJSON[models.User](ctx, c, meEndpoint, Request{})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LoadUsers returns the public records of all accounts.
func (c *Client) LoadUsers(ctx context.Context) ([]models.PublicUser, error) {
	return callJSON[[]models.PublicUser](ctx, c, usersEndpoint, Request{})
}

// SignUsers signs the document at url for every listed account and returns
// one outcome per id. Ids must be ULIDs.
func (c *Client) SignUsers(ctx context.Context, ids []string, url string) ([]models.UserSignResponse, error) {
	for _, id := range ids {
		if _, err := ulid.ParseStrict(id); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidID, id, err)
		}
	}

	return callJSON[[]models.UserSignResponse](ctx, c, signEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.SignPayload{ULIDs: ids, URL: url},
	})
}

// UpdateUserProfile changes the username and/or password and stores the
// returned user.
func (c *Client) UpdateUserProfile(ctx context.Context, p models.UpdateUserPayload) (*models.User, error) {
	u, err := callJSON[models.User](ctx, c, meEndpoint, Request{Method: http.MethodPatch, Body: p})
	if err != nil {
		return nil, err
	}
	if c.env.IsInteractive() {
		c.store.SetUser(&u)
	}
	return &u, nil
}

// UpdateUserJWT stores a third-party token for the logged-in user. Tokens
// without a positive exp claim are rejected locally.
func (c *Client) UpdateUserJWT(ctx context.Context, token string) error {
	if _, err := TokenExpiry(token); err != nil {
		return err
	}

	_, err := c.Call(ctx, updateJWTEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.JWTPayload{JWT: token},
	})
	return err
}

// TokenExpiry returns the exp claim of token without verifying its signature.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: exp claim missing", ErrInvalidToken)
	}
	if exp.Unix() <= 0 {
		return time.Time{}, fmt.Errorf("%w: exp must be positive", ErrInvalidToken)
	}
	return exp.UTC(), nil
}
