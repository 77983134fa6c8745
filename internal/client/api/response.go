package api

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Response is a successful response body: either JSON or raw text,
// depending on the Content-Type the server sent.
type Response struct {
	Status      int
	ContentType string
	body        []byte
	json        bool
}

func newResponse(status int, contentType string, body []byte) *Response {
	return &Response{
		Status:      status,
		ContentType: contentType,
		body:        body,
		json:        isJSONContentType(contentType),
	}
}

// IsJSON reports whether the body is JSON.
func (r *Response) IsJSON() bool { return r.json }

// Text returns the body as a string regardless of its kind.
func (r *Response) Text() string { return string(r.body) }

// Bytes returns the raw body.
func (r *Response) Bytes() []byte { return r.body }

// Decode unmarshals a JSON body into v. It returns ErrNotJSON for text bodies.
func (r *Response) Decode(v any) error {
	if !r.json {
		return fmt.Errorf("%w: content type %q", ErrNotJSON, r.ContentType)
	}
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// callJSON performs req and decodes the JSON body into a T.
func callJSON[T any](ctx context.Context, c *Client, endpoint string, req Request) (T, error) {
	var out T
	resp, err := c.Call(ctx, endpoint, req)
	if err != nil {
		return out, err
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
