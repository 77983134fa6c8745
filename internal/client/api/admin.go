package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/signkeeper/internal/common"
)

// AdminDeleteUser removes any account using the backend admin key. It needs
// no session and leaves the auth store alone.
func (c *Client) AdminDeleteUser(ctx context.Context, id, adminKey string) error {
	if id == "" {
		return ErrInvalidID
	}
	_, err := c.Call(ctx, "/admin/users/"+url.PathEscape(id), Request{
		Method: http.MethodDelete,
		Header: http.Header{common.AdminKeyHeader: {adminKey}},
	})
	return err
}
