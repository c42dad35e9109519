package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the side effects of the 401 branch in call order.
type recorder struct {
	mu      sync.Mutex
	events  []string
	session *session.Store
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Push(path string) error {
	r.add("navigate:" + path + ":authenticated=" + boolString(r.session.IsAuthenticated()))
	return nil
}

func (r *recorder) Error(msg string)   { r.add("error:" + msg) }
func (r *recorder) Warning(msg string) { r.add("warning:" + msg) }
func (r *recorder) Info(msg string)    { r.add("info:" + msg) }
func (r *recorder) Success(msg string) { r.add("success:" + msg) }

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

type seen struct {
	mu      sync.Mutex
	headers []http.Header
}

func (s *seen) last() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[len(s.headers)-1]
}

func newBackend(t *testing.T) (*httptest.Server, *seen) {
	t.Helper()
	s := &seen{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s.mu.Lock()
			s.headers = append(s.headers, req.Header.Clone())
			s.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/api/depots/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "North", "skip": req.URL.Query().Get("skip")}})
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil || req.PostForm.Get("username") != "alice" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok", "token_type": "bearer"})
	})
	r.Post("/api/depots/", func(w http.ResponseWriter, req *http.Request) {
		var in map[string]any
		_ = json.NewDecoder(req.Body).Decode(&in)
		in["id"] = 7
		_ = json.NewEncoder(w).Encode(in)
	})
	r.Get("/api/users/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	r.Get("/api/granaries", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Granary not found"}`))
	})
	r.Get("/api/slow", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-req.Context().Done():
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, s
}

func newClient(t *testing.T, baseURL string, st *session.Store) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{session: st}
	c := New(Config{BaseURL: baseURL + "/api", Timeout: 200 * time.Millisecond}, Deps{
		Session:   st,
		Navigator: rec,
		Notifier:  rec,
	})
	return c, rec
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	srv, seen := newBackend(t)
	st := session.New(nil, nil)
	c, _ := newClient(t, srv.URL, st)

	_, err := c.Send(context.Background(), Get("/depots/"))
	require.NoError(t, err)
	assert.Empty(t, seen.last().Get("Authorization"))
	assert.NotEmpty(t, seen.last().Get(RequestIDHeader))
}

func TestTokenIsAttachedAsBearer(t *testing.T) {
	srv, seen := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	c, _ := newClient(t, srv.URL, st)

	_, err := c.Send(context.Background(), Get("/depots/"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", seen.last().Get("Authorization"))
}

func TestTokenIsReadAtSendTime(t *testing.T) {
	srv, seen := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	c, _ := newClient(t, srv.URL, st)

	st.Logout()
	_, err := c.Send(context.Background(), Get("/depots/"))
	require.NoError(t, err)
	assert.Empty(t, seen.last().Get("Authorization"), "a cleared session must not leak a stale token")
}

func TestSuccessReturnsPayload(t *testing.T) {
	srv, _ := newBackend(t)
	c, _ := newClient(t, srv.URL, session.New(nil, nil))

	payload, err := c.Send(context.Background(), Get("/depots/").WithQuery(url.Values{"skip": {"5"}}))
	require.NoError(t, err)

	var depots []map[string]any
	require.NoError(t, payload.Decode(&depots))
	require.Len(t, depots, 1)
	assert.Equal(t, "North", depots[0]["name"])
	assert.Equal(t, "5", depots[0]["skip"])
}

func TestFormAndJSONBodies(t *testing.T) {
	srv, seen := newBackend(t)
	c, _ := newClient(t, srv.URL, session.New(nil, nil))

	payload, err := c.Send(context.Background(), PostForm("/auth/login", map[string]string{"username": "alice", "password": "pw"}))
	require.NoError(t, err)
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, payload.Decode(&tok))
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Contains(t, seen.last().Get("Content-Type"), "application/x-www-form-urlencoded")

	payload, err = c.Send(context.Background(), Post("/depots/", map[string]string{"name": "South"}))
	require.NoError(t, err)
	var depot map[string]any
	require.NoError(t, payload.Decode(&depot))
	assert.Equal(t, "South", depot["name"])
	assert.EqualValues(t, 7, depot["id"])
}

func TestUnauthorizedExpiresSession(t *testing.T) {
	srv, _ := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	st.SetUser(session.UserProfile{Username: "alice"})
	c, rec := newClient(t, srv.URL, st)

	payload, err := c.Send(context.Background(), Get("/users/"))
	require.Error(t, err)
	assert.Nil(t, payload)

	assert.Equal(t, "", st.Token())
	assert.False(t, st.IsAuthenticated())
	_, hasUser := st.User()
	assert.False(t, hasUser)

	assert.Equal(t, []string{
		"navigate:/login:authenticated=false",
		"error:" + SessionExpiredMessage,
	}, rec.events, "logout happens before the redirect, the notice comes last")

	assert.True(t, apperrors.IsKind(err, apperrors.AuthorizationExpired))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr, "the HTTP error is still returned")
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "Could not validate credentials", httpErr.Detail)
}

func TestOtherFailuresPropagateUnchanged(t *testing.T) {
	srv, _ := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	c, rec := newClient(t, srv.URL, st)

	_, err := c.Send(context.Background(), Get("/granaries"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.HTTPFailure))
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "GET /granaries: 404 Not Found: Granary not found", httpErr.Error())

	assert.True(t, st.IsAuthenticated(), "only 401 touches the session")
	assert.Empty(t, rec.events)
}

func TestTimeoutIsNetworkFailure(t *testing.T) {
	srv, _ := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	c, rec := newClient(t, srv.URL, st)

	_, err := c.Send(context.Background(), Get("/slow"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NetworkFailure))
	assert.True(t, st.IsAuthenticated())
	assert.Empty(t, rec.events)
}

func TestConnectionRefusedIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, _ := newClient(t, base, session.New(nil, nil))
	_, err := c.Send(context.Background(), Get("/depots/"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.NetworkFailure))
}

func TestHooksRunInOrderBeforeDispatch(t *testing.T) {
	srv, seen := newBackend(t)
	st := session.New(nil, nil)
	require.NoError(t, st.SetToken("abc"))
	c, _ := newClient(t, srv.URL, st)

	var order []string
	c.Use(func(r *resty.Request) error {
		order = append(order, "first:"+r.Header.Get("Authorization"))
		r.SetHeader("X-Client-Version", "test")
		return nil
	})
	c.Use(func(r *resty.Request) error {
		order = append(order, "second")
		return nil
	})

	_, err := c.Send(context.Background(), Get("/depots/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:Bearer abc", "second"}, order, "custom hooks see the bearer header")
	assert.Equal(t, "test", seen.last().Get("X-Client-Version"))
}

func TestHookErrorAbortsWithoutSending(t *testing.T) {
	srv, seen := newBackend(t)
	c, _ := newClient(t, srv.URL, session.New(nil, nil))
	boom := errors.New("offline mode")
	c.Use(func(*resty.Request) error { return boom })

	_, err := c.Send(context.Background(), Get("/depots/"))
	require.ErrorIs(t, err, boom)
	assert.False(t, apperrors.IsKind(err, apperrors.NetworkFailure))
	assert.Empty(t, seen.headers)
}

func TestDetailFrom(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail":"Incorrect username or password"}`, want: "Incorrect username or password"},
		{name: "validation list", body: `{"detail":[{"msg":"field required"},{"msg":"value is not a valid email address"}]}`, want: "field required; value is not a valid email address"},
		{name: "no detail", body: `{"error":"x"}`, want: ""},
		{name: "not json", body: `Internal Server Error`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detailFrom([]byte(tt.body)))
		})
	}
}
