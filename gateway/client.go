// Package gateway is the single choke point for every call to the
// invoice backend. It attaches the session credential, classifies
// failures, and tears down the local session when the backend rejects
// the credential. It never retries; retry policy belongs to callers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dev-alt/invoice-generator-go/session"
)

// Client talks to the invoice backend over its fixed HTTP contract
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store

	// onUnauthorized is invoked exactly once per 401 response, after
	// the session has been cleared. The shell uses it to signal a
	// redirect to the login view.
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUnauthorizedHook sets the callback fired after session teardown
// on a 401 response
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient creates a gateway client. The session store is read for the
// bearer credential on every authenticated request and written only by
// the 401 handler.
func NewClient(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the backend's failure payload shape
type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

// do performs one exchange. When out is non-nil the success body is
// decoded into it; when authenticated is true the session credential is
// attached. Returns the raw body and content type for binary consumers.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, authenticated bool) ([]byte, string, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, "", &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to marshal request: %v", err)}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Accept", "*/*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received: timeout, refused connection, DNS
		return nil, "", &Error{Kind: KindNetwork, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return nil, "", &Error{Kind: KindServer, Message: fmt.Sprintf("failed to parse response: %v", err)}
			}
		}
		return respBody, resp.Header.Get("Content-Type"), nil
	}

	return nil, "", c.classify(resp.StatusCode, respBody, method, path)
}

// classify maps a non-2xx response to the failure taxonomy. The 401
// branch is the session's second sanctioned writer.
func (c *Client) classify(status int, body []byte, method, path string) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	message := eb.Error
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		slog.Warn("credential rejected, destroying session", "method", method, "path", path)
		c.session.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Kind: KindUnauthorized, Message: message}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: message}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &Error{Kind: KindValidation, Message: message, Fields: eb.Errors}
	case status >= 500:
		return &Error{Kind: KindServer, Message: message}
	default:
		return &Error{Kind: KindServer, Message: fmt.Sprintf("unexpected status %d: %s", status, message)}
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	_, _, err := c.do(ctx, http.MethodGet, path, nil, out, true)
	return err
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	_, _, err := c.do(ctx, http.MethodPost, path, body, out, true)
	return err
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	_, _, err := c.do(ctx, http.MethodPut, path, body, out, true)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, _, err := c.do(ctx, http.MethodDelete, path, nil, nil, true)
	return err
}

// getBinary fetches a binary payload (PDF download/preview)
func (c *Client) getBinary(ctx context.Context, path string) ([]byte, string, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil, true)
}
