package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/client/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, in := range []string{"", "localhost:3000", "ftp://host/api", "http://"} {
		_, err := New(in)
		assert.Error(t, err, in)
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("http://localhost:3000/api/")
	require.NoError(t, err)

	assert.Equal(t, session.Interactive, c.Environment())
	assert.NotNil(t, c.Store())
	assert.Equal(t, "http://localhost:3000/api", c.baseURL.String())
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestCall_Headers(t *testing.T) {
	var got http.Header
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			writeJSON(w, http.StatusOK, map[string]string{"ok": "yes"})
		})
	})

	_, err := c.Call(context.Background(), "/ping", Request{
		Header: http.Header{"accept": {"text/plain"}, "X-Extra": {"1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "text/plain", got.Get("Accept"))
	assert.Equal(t, "1", got.Get("X-Extra"))
	_, err = uuid.Parse(got.Get("X-Request-Id"))
	assert.NoError(t, err)
}

func TestCall_QueryAndBody(t *testing.T) {
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Post("/echo", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			_ = jsonDecode(r, &body)
			writeJSON(w, http.StatusOK, map[string]any{"q": r.URL.Query().Get("q"), "body": body})
		})
	})

	resp, err := c.Call(context.Background(), "/echo", Request{
		Method: http.MethodPost,
		Body:   map[string]int{"n": 1},
		Query:  map[string][]string{"q": {"a b"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"q":"a b","body":{"n":1}}`, resp.Text())
}

func TestCall_TextAndJSONBodies(t *testing.T) {
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Get("/json", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"n": 7})
		})
		r.Get("/text", func(w http.ResponseWriter, r *http.Request) {
			writeText(w, http.StatusOK, "saved")
		})
	})
	ctx := context.Background()

	resp, err := c.Call(ctx, "/json", Request{})
	require.NoError(t, err)
	require.True(t, resp.IsJSON())
	var v struct{ N int }
	require.NoError(t, resp.Decode(&v))
	assert.Equal(t, 7, v.N)

	resp, err = c.Call(ctx, "/text", Request{})
	require.NoError(t, err)
	assert.False(t, resp.IsJSON())
	assert.Equal(t, "saved", resp.Text())
	assert.ErrorIs(t, resp.Decode(&v), ErrNotJSON)
}

func TestCall_ErrorMessages(t *testing.T) {
	long := strings.Repeat("x", 250)
	tests := []struct {
		name   string
		status int
		write  func(w http.ResponseWriter, status int)
		want   string
	}{
		{
			name: "json message", status: http.StatusUnauthorized,
			write: func(w http.ResponseWriter, s int) { writeJSON(w, s, map[string]string{"message": "bad password"}) },
			want:  "bad password",
		},
		{
			name: "json error field", status: http.StatusBadRequest,
			write: func(w http.ResponseWriter, s int) { writeJSON(w, s, map[string]string{"error": "missing key"}) },
			want:  "missing key",
		},
		{
			name: "json without known fields", status: http.StatusBadRequest,
			write: func(w http.ResponseWriter, s int) { writeJSON(w, s, map[string]int{"code": 3}) },
			want:  "HTTP error! status: 400",
		},
		{
			name: "unparseable json", status: http.StatusBadGateway,
			write: func(w http.ResponseWriter, s int) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(s)
				_, _ = w.Write([]byte("{oops"))
			},
			want: "HTTP error! status: 502",
		},
		{
			name: "short text", status: http.StatusConflict,
			write: func(w http.ResponseWriter, s int) { writeText(w, s, "Username already exists") },
			want:  "Username already exists",
		},
		{
			name: "whitespace text is kept verbatim", status: http.StatusBadRequest,
			write: func(w http.ResponseWriter, s int) { writeText(w, s, " ") },
			want:  " ",
		},
		{
			name: "long text", status: http.StatusBadRequest,
			write: func(w http.ResponseWriter, s int) { writeText(w, s, long) },
			want:  "HTTP error! status: 400",
		},
		{
			name: "empty body", status: http.StatusInternalServerError,
			write: func(w http.ResponseWriter, s int) { w.WriteHeader(s) },
			want:  "HTTP error! status: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newBackend(t, func(r chi.Router) {
				r.Get("/fail", func(w http.ResponseWriter, r *http.Request) { tt.write(w, tt.status) })
			})

			_, err := c.Call(context.Background(), "/fail", Request{})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{Status: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: 403}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{Status: 404}, ErrNotFound)
	assert.ErrorIs(t, &APIError{Status: 503}, ErrUnavailable)
	assert.Nil(t, (&APIError{Status: 400}).Unwrap())
}

func TestCall_401ClearsState(t *testing.T) {
	c, store, _ := newBackend(t, func(r chi.Router) {
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			writeText(w, http.StatusUnauthorized, "Unauthorized")
		})
	})
	u := alice()
	store.SetAuthenticated(true)
	store.SetUser(&u)

	_, err := c.LoadUsers(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	st := store.State()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
}

func TestCall_401FromLoginKeepsState(t *testing.T) {
	c, store, _ := newBackend(t, func(r chi.Router) {
		r.Post("/auth/login", loginHandler)
	})
	u := alice()
	store.SetAuthenticated(true)
	store.SetUser(&u)

	err := c.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "bad password", err.Error())

	st := store.State()
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, aliceID, st.User.ID)
}

func TestCall_401InPrerenderKeepsState(t *testing.T) {
	c, store, _ := newBackend(t, func(r chi.Router) {
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}, WithEnvironment(session.Prerender))
	store.SetAuthenticated(true)

	_, err := c.LoadUsers(context.Background())
	require.Error(t, err)
	assert.True(t, store.State().Authenticated)
}

func TestCall_TransportFailure(t *testing.T) {
	c, _, srv := newBackend(t, func(r chi.Router) {})
	srv.Close()

	_, err := c.Call(context.Background(), "/users", Request{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCall_ContextCancelled(t *testing.T) {
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, []models.PublicUser{})
		})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Call(ctx, "/users", Request{})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingDoer struct {
	calls atomic.Int32
	seen  string
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	if ck, err := req.Cookie("auth"); err == nil {
		d.seen = ck.Value
	}
	return http.DefaultClient.Do(req)
}

func TestCall_DoerOverrideKeepsCookies(t *testing.T) {
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Post("/auth/login", loginHandler)
		r.Get("/users/me", requireSession(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, alice())
		}))
	})
	d := &countingDoer{}
	ctx := context.Background()

	_, err := c.Call(ctx, "/auth/login", Request{
		Method: http.MethodPost,
		Body:   models.LoginPayload{Username: "alice", Password: "secret"},
		Doer:   d,
	})
	require.NoError(t, err)
	assert.Equal(t, "session-token", c.SessionCookie())

	_, err = c.Call(ctx, "/users/me", Request{Doer: d})
	require.NoError(t, err)
	assert.Equal(t, int32(2), d.calls.Load())
	assert.Equal(t, "session-token", d.seen)
}

func TestSessionCookie_SetAndDrop(t *testing.T) {
	c, err := New("http://127.0.0.1:3000/api")
	require.NoError(t, err)
	assert.Empty(t, c.SessionCookie())

	c.SetSessionCookie("abc")
	assert.Equal(t, "abc", c.SessionCookie())

	c.dropSessionCookie()
	assert.Empty(t, c.SessionCookie())
}

func TestCall_UnwrapsToSentinel(t *testing.T) {
	c, _, _ := newBackend(t, func(r chi.Router) {
		r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
			writeText(w, http.StatusNotFound, "User not found")
		})
	})
	_, err := c.Call(context.Background(), "/missing", Request{})
	assert.True(t, errors.Is(err, ErrNotFound))
}
