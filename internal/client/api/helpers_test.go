package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/client/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "01HZY4M7X3Q0ZJ8W5K2N9P6R1T"
	bobID   = "01HZY4N2B8C5D7E9F1G3H5J7K9"
)

// newBackend starts a fake API mounted under /api and returns a client for it.
func newBackend(t *testing.T, routes func(r chi.Router), opts ...Option) (*Client, *session.MemoryStore, *httptest.Server) {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api", routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c, err := New(srv.URL+"/api", append([]Option{WithStore(store)}, opts...)...)
	require.NoError(t, err)
	return c, store, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

func requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("auth")
		if err != nil || ck.Value != "session-token" {
			writeText(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var p models.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.Password != "secret" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad password"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "auth", Value: "session-token", Path: "/", HttpOnly: true})
	w.WriteHeader(http.StatusOK)
}

func alice() models.User {
	return models.User{ID: aliceID, Username: "alice"}
}

func loggedIn(t *testing.T, c *Client) {
	t.Helper()
	c.SetSessionCookie("session-token")
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
