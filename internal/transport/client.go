// Package transport is the HTTP client every backend call goes through.
//
// Requests pass an ordered pipeline. Pre-send hooks run strictly before the
// request is dispatched (request id, then the bearer token read from the
// session at that moment). Post-receive handling finishes before Send returns:
// a 2xx answer yields the response payload, a 401 ends the session, asks the
// navigator for the login route and shows the expiry notice before the error is
// returned, and every other failure is logged and returned unchanged.
//
// There is exactly one attempt per call. Nothing is retried.
package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "grainmgr/cli/internal/errors"
	"grainmgr/cli/internal/notify"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds a single request. A timeout is reported as a network failure.
	DefaultTimeout = 5 * time.Second
	// DefaultLoginPath is where the navigator is sent after a 401.
	DefaultLoginPath = "/login"
	// SessionExpiredMessage is the notice shown after a 401.
	SessionExpiredMessage = "Session expired, please login again"

	// RequestIDHeader correlates client and server logs.
	RequestIDHeader = "X-Request-ID"
)

// Session is the part of the session store the transport reads and clears.
type Session interface {
	Token() string
	Logout()
}

// Navigator performs a guarded navigation.
type Navigator interface {
	Push(path string) error
}

// PreSendHook may modify an outgoing request. Returning an error aborts the call
// before anything is sent.
type PreSendHook func(r *resty.Request) error

// Config holds the fixed transport settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	LoginPath string
}

// Deps are the collaborators of the transport.
type Deps struct {
	Session   Session
	Navigator Navigator
	Notifier  notify.Notifier
	Log       logrus.FieldLogger
}

// Client sends requests to the backend.
type Client struct {
	rc        *resty.Client
	session   Session
	nav       Navigator
	notifier  notify.Notifier
	log       logrus.FieldLogger
	loginPath string

	mu    sync.RWMutex
	hooks []PreSendHook
}

// hookError marks failures raised by pre-send hooks so they are not mistaken
// for network failures.
type hookError struct{ err error }

func (e *hookError) Error() string { return e.err.Error() }
func (e *hookError) Unwrap() error { return e.err }

// New builds a Client. Session is required; missing Navigator, Notifier and Log
// default to no-ops.
func New(cfg Config, deps Deps) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "grainmgr-cli"
	}
	log := deps.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}

	c := &Client{
		session:   deps.Session,
		nav:       deps.Navigator,
		notifier:  notifier,
		log:       log.WithField("component", "transport"),
		loginPath: cfg.LoginPath,
	}
	c.hooks = []PreSendHook{setRequestID, c.attachToken}

	c.rc = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(log)
	c.rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		return c.runPreSend(r)
	})
	return c
}

// SetNavigator wires the navigator after construction. The router and the
// transport reference each other through the views, so one side is set late.
func (c *Client) SetNavigator(n Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = n
}

// Use appends a pre-send hook. Hooks run in the order they were added, after
// the built-in request id and bearer hooks.
func (c *Client) Use(h PreSendHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, h)
}

func (c *Client) runPreSend(r *resty.Request) error {
	c.mu.RLock()
	hooks := append([]PreSendHook(nil), c.hooks...)
	c.mu.RUnlock()
	for _, h := range hooks {
		if err := h(r); err != nil {
			return &hookError{err: err}
		}
	}
	return nil
}

func setRequestID(r *resty.Request) error {
	if r.Header.Get(RequestIDHeader) == "" {
		r.SetHeader(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// attachToken reads the token at send time; a session cleared by an earlier
// 401 is therefore never sent again.
func (c *Client) attachToken(r *resty.Request) error {
	if c.session != nil {
		if t := c.session.Token(); t != "" {
			r.SetHeader("Authorization", "Bearer "+t)
			return nil
		}
	}
	r.Header.Del("Authorization")
	return nil
}

// Send performs req once and returns the response payload.
func (c *Client) Send(ctx context.Context, req *Request) (Payload, error) {
	r := c.rc.R().SetContext(ctx)
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	switch {
	case req.Form != nil:
		r.SetFormData(req.Form)
	case req.Body != nil:
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	log := c.log.WithFields(logrus.Fields{"method": method, "path": req.Path})
	log.Debug("sending request")

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		var he *hookError
		if errors.As(err, &he) {
			return nil, he.err
		}
		log.WithError(err).Warn("request failed")
		return nil, apperrors.Wrap(apperrors.NetworkFailure, method+" "+req.Path, err)
	}

	status := resp.StatusCode()
	log = log.WithField("status", status)
	if status >= 200 && status < 300 {
		log.Debug("request succeeded")
		return Payload(resp.Body()), nil
	}

	httpErr := &HTTPError{
		Method:     method,
		Path:       req.Path,
		StatusCode: status,
		Detail:     detailFrom(resp.Body()),
		Body:       resp.Body(),
	}
	if status == http.StatusUnauthorized {
		c.expireSession(log)
		return nil, apperrors.Wrap(apperrors.AuthorizationExpired, "session expired", httpErr)
	}
	log.WithError(httpErr).Warn("request rejected")
	return nil, apperrors.Wrap(apperrors.HTTPFailure, "request rejected", httpErr)
}

// expireSession runs the 401 side effects in order: logout, redirect, notice.
func (c *Client) expireSession(log logrus.FieldLogger) {
	log.Warn("backend rejected the session")
	if c.session != nil {
		c.session.Logout()
	}
	c.mu.RLock()
	nav := c.nav
	c.mu.RUnlock()
	if nav != nil {
		if err := nav.Push(c.loginPath); err != nil {
			log.WithError(err).Warn("redirect to login failed")
		}
	}
	c.notifier.Error(SessionExpiredMessage)
}
