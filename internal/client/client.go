// Package client is a typed client for the Flavour Fusion REST API. It
// caches fetched lists, performs optimistic like toggles with rollback, and
// invalidates cached data after recipe mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"flavourfusion/internal/client/notify"
	"flavourfusion/internal/client/query"
	"flavourfusion/internal/client/session"
	"flavourfusion/internal/types"
)

// ErrNoSession is returned when an authenticated call is attempted without
// a logged-in session.
var ErrNoSession = errors.New("not logged in")

// RequestError is the single failure signal for remote calls: transport
// errors and non-2xx statuses both end up here.
type RequestError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client talks to the Flavour Fusion backend on behalf of one viewer.
type Client struct {
	baseURL  string
	httpc    *http.Client
	store    *session.Store
	notifier notify.Notifier
	logger   *zap.Logger

	sessionMu sync.RWMutex
	session   *session.Session

	lists   *query.Cache[[]Recipe]
	details *query.Cache[Recipe]

	toggleMu sync.Mutex
	toggles  map[uuid.UUID]ToggleState
}

// Option is a functional option for configuring the client.
type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithSessionStore enables durable sessions. Without a store, sessions live
// only for the lifetime of the client.
func WithSessionStore(store *session.Store) Option {
	return func(c *Client) { c.store = store }
}

// New creates a client for the API at baseURL (including the /api prefix,
// e.g. "http://localhost:8000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		logger:  zap.NewNop(),
		toggles: make(map[uuid.UUID]ToggleState),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = notify.NewZapNotifier(c.logger)
	}
	c.lists = query.New(query.WithLogger[[]Recipe](c.logger))
	c.details = query.New(query.WithLogger[Recipe](c.logger))
	return c
}

// LoadSession restores a persisted session, if any. Called once at startup.
func (c *Client) LoadSession() (session.Session, bool, error) {
	if c.store == nil {
		return session.Session{}, false, nil
	}
	sess, ok, err := c.store.Load()
	if err != nil || !ok {
		return session.Session{}, false, err
	}
	c.setSession(&sess)
	return sess, true, nil
}

// Session returns the active session, if any.
func (c *Client) Session() (session.Session, bool) {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	if c.session == nil {
		return session.Session{}, false
	}
	return *c.session, true
}

func (c *Client) setSession(sess *session.Session) {
	c.sessionMu.Lock()
	c.session = sess
	c.sessionMu.Unlock()

	// Cached lists and detail entries carry viewer-specific state
	// (userHasLiked), so a viewer change makes all of them stale.
	c.invalidateLists()
	c.details.Clear()
}

// Login authenticates with email and password and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	const action = "log in"

	form := url.Values{
		"email":    {email},
		"password": {password},
	}
	var resp types.AuthResponse
	if err := c.postForm(ctx, "/login", form, &resp); err != nil {
		c.notifier.Failure(action, err)
		return session.Session{}, err
	}

	sess := session.Session{
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
		Token:    resp.Token,
	}
	c.setSession(&sess)
	if c.store != nil {
		if err := c.store.Save(sess); err != nil {
			c.logger.Warn("failed to persist session", zap.Error(err))
		}
	}
	c.notifier.Success(action)
	return sess, nil
}

// Register creates an account and logs the new user in.
func (c *Client) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	const action = "register"

	req := types.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}
	var resp types.AuthResponse
	if err := c.postJSON(ctx, "/register", req, &resp); err != nil {
		c.notifier.Failure(action, err)
		return session.Session{}, err
	}

	sess := session.Session{
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
		Token:    resp.Token,
	}
	c.setSession(&sess)
	if c.store != nil {
		if err := c.store.Save(sess); err != nil {
			c.logger.Warn("failed to persist session", zap.Error(err))
		}
	}
	c.notifier.Success(action)
	return sess, nil
}

// Logout drops the active session and clears the persisted one.
func (c *Client) Logout() error {
	c.setSession(nil)
	if c.store == nil {
		return nil
	}
	return c.store.Clear()
}

func (c *Client) get(ctx context.Context, path string, auth bool, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, auth, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, false, out)
}

func (c *Client) postAuth(ctx context.Context, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, true, out)
}

func (c *Client) putAuth(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", body, true, out)
}

func (c *Client) deleteAuth(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, true, nil)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", []byte(form.Encode()), false, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, auth bool, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		sess, ok := c.Session()
		if !ok {
			return &RequestError{Method: method, Path: path, Err: ErrNoSession}
		}
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RequestError{Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}
