package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrNotFound     = errors.New("not found")
	ErrNotJSON      = errors.New("response is not JSON")
	ErrInvalidID    = errors.New("invalid id")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidDate  = errors.New("invalid date")
)

// maxTextMessage bounds plain-text error bodies used verbatim as messages.
const maxTextMessage = 200

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUnavailable
	}
	return nil
}

func genericMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// extractMessage picks the human-readable message out of an error body.
// JSON bodies yield their "message" or "error" string field; short plain-text
// bodies are used as is. Anything else falls back to the generic message.
func extractMessage(contentType string, body []byte, status int) string {
	if isJSONContentType(contentType) {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			return genericMessage(status)
		}
		for _, key := range []string{"message", "error"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
		return genericMessage(status)
	}

	text := string(body)
	if text != "" && utf8.ValidString(text) && utf8.RuneCountInString(text) < maxTextMessage {
		return text
	}
	return genericMessage(status)
}
