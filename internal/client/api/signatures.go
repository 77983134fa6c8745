package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
)

const (
	signatureEndpoint  = "/users/me/signature"
	signaturesEndpoint = "/users/me/signatures"
)

// SaveSignature uploads a PNG data URL as the user's handwritten signature
// and stores the returned user.
func (c *Client) SaveSignature(ctx context.Context, dataURL string) (*models.User, error) {
	p := models.SaveSignaturePayload{Signature: dataURL}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	u, err := callJSON[models.User](ctx, c, signatureEndpoint, Request{Method: http.MethodPost, Body: p})
	if err != nil {
		return nil, err
	}
	if c.env.IsInteractive() {
		c.store.SetUser(&u)
	}
	return &u, nil
}

// GetSignatures lists the signatures stored for the user.
func (c *Client) GetSignatures(ctx context.Context) ([]models.Signature, error) {
	return callJSON[[]models.Signature](ctx, c, signaturesEndpoint, Request{})
}

func (c *Client) DeleteSignature(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	_, err := c.Call(ctx, signaturesEndpoint+"/"+url.PathEscape(id), Request{Method: http.MethodDelete})
	return err
}
