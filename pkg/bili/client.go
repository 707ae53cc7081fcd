package bili

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues credentialed requests against the message APIs.
// It is safe for concurrent use; the underlying *http.Client is shared
// read-only across all feed fetches.
type Client struct {
	api     string
	message string
	csrf    string
	ua      string
	http    *http.Client
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Useful for custom
// transports, cookie jars, or tests. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the given endpoints and session credential.
// The csrf token is supplied by the caller; the client never obtains or
// refreshes it.
func New(cfg Config, csrf string, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		api:     strings.TrimRight(cfg.APIBaseURL, "/"),
		message: strings.TrimRight(cfg.MessageBaseURL, "/"),
		csrf:    csrf,
		ua:      cfg.UserAgent,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CSRF returns the session credential the client was created with.
func (c *Client) CSRF() string { return c.csrf }

// GetJSON performs a GET request and unmarshals the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	body, err := c.send(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding GET %s: %w", ErrUnexpectedShape, req.URL.Path, err)
	}
	return nil
}

// PostForm performs a form-encoded POST and validates the response
// envelope: a 2xx status with a top-level `code` equal to zero.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req)
	if err != nil {
		return err
	}
	return parseEnvelope(body)
}

// PostJSON performs a JSON POST and validates the response envelope the
// same way PostForm does.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, rawURL, bytes.NewReader(data),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return err
	}
	return parseEnvelope(body)
}

// send executes the request and returns the response body, classifying
// network failures and non-2xx statuses.
func (c *Client) send(req *http.Request) ([]byte, error) {
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"%w: %d on %s %s: %s",
			ErrUnexpectedStatus, resp.StatusCode, req.Method, req.URL.Path, body,
		)
	}

	c.log.LogAttrs(req.Context(), slog.LevelDebug, "request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
	)

	return body, nil
}

// parseEnvelope validates the `code == 0` success criterion shared by
// every mutating endpoint. The raw body rides along on failures.
func parseEnvelope(body []byte) error {
	var env struct {
		Code *int64 `json:"code"`
	}
	if err := json.Unmarshal(body, &env); err != nil || env.Code == nil {
		return fmt.Errorf("%w: missing response code: %s", ErrUnexpectedShape, body)
	}
	if *env.Code != 0 {
		return &APIError{Code: *env.Code, Body: body}
	}
	return nil
}
