// Package gateway issues every remote call the client makes. It attaches
// bearer credentials, normalizes transport and HTTP failures into a small
// error taxonomy, and intercepts 401 responses centrally: the persisted
// session is cleared and navigation to the login route requested before any
// per-endpoint handling runs.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"spendly/internal/core"
	applog "spendly/internal/log"
	"spendly/internal/notify"
	"spendly/internal/store"
)

type (
	// Client is the single chokepoint for calls against the remote service.
	Client struct {
		baseURL  string
		http     *http.Client
		sessions store.SessionStore
		nav      notify.Navigator
		logger   *applog.Logger
	}

	// Envelope is the server's response envelope. Endpoints populate the
	// field named for their payload; failures carry only Message.
	Envelope struct {
		Token      string          `json:"token"`
		User       core.User       `json:"user"`
		Expense    *core.Expense   `json:"expense"`
		Expenses   []core.Expense  `json:"expenses"`
		Statistics json.RawMessage `json:"statistics"`
		Message    string          `json:"message"`
	}
)

func NewClient(baseURL string, sessions store.SessionStore, nav notify.Navigator, logger *applog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     http.DefaultClient,
		sessions: sessions,
		nav:      nav,
		logger:   logger.WithComponent("gateway"),
	}
}

// Issue performs one request. The body, when non-nil, is sent as JSON. When
// requiresAuth is set and a token is persisted it is attached as a bearer
// credential; when no token is present the request proceeds unauthenticated
// and the server rejects it.
func (c *Client) Issue(ctx context.Context, method, path string, body any, requiresAuth bool) (*Envelope, error) {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &ValidationError{Message: fmt.Sprintf("encode request body: %v", err)}
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if requiresAuth {
		if sess, err := c.sessions.LoadSession(ctx); err != nil {
			c.logger.Warn("session store read failed, proceeding unauthenticated",
				"request_id", requestID, "error", err)
		} else if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request transport failure",
			"request_id", requestID, "method", method, "path", path, "error", err)
		return nil, ErrNetworkUnavailable
	}
	defer resp.Body.Close()

	// Session-expiry interception runs before success/failure handling,
	// whatever the endpoint or response body.
	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.sessions.ClearSession(ctx); err != nil {
			c.logger.Error("clear session after 401 failed",
				"request_id", requestID, "error", err)
		}
		c.nav.NavigateTo(notify.RouteLogin)
		c.logger.Info("session expired",
			"request_id", requestID, "method", method, "path", path)
		return nil, ErrSessionExpired
	}

	var env Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if decodeErr == nil {
			message = env.Message
		}
		if message == "" {
			message = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		}
		c.logger.Warn("request failed",
			"request_id", requestID, "method", method, "path", path,
			"status", resp.StatusCode, "message", message)
		return nil, &RequestError{Status: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		c.logger.Error("response decode failed",
			"request_id", requestID, "method", method, "path", path, "error", decodeErr)
		return nil, &RequestError{Status: resp.StatusCode, Message: "invalid response from server"}
	}

	c.logger.Debug("request completed",
		"request_id", requestID, "method", method, "path", path, "status", resp.StatusCode)
	return &env, nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.Issue(ctx, http.MethodGet, path, nil, true)
}

// Post issues an authenticated POST.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Issue(ctx, http.MethodPost, path, body, true)
}

// PostPublic issues an unauthenticated POST; only registration and login
// are public endpoints.
func (c *Client) PostPublic(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Issue(ctx, http.MethodPost, path, body, false)
}

// Put issues an authenticated PUT.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.Issue(ctx, http.MethodPut, path, body, true)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Issue(ctx, http.MethodDelete, path, nil, true)
}
