package interpret

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Interpreter sends a dream to the interpretation endpoint.
// *Client implements it; the form controller depends only on this.
type Interpreter interface {
	Interpret(ctx context.Context, dream string) (Response, error)
}

// Ensure Client implements Interpreter at compile time.
var _ Interpreter = (*Client)(nil)

// Client talks to the dreamline interpretation API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Endpoint paths.
const (
	InterpretPath = "/api/interpret"
	HealthPath    = "/health"
)

const (
	defaultAPIURL    = "127.0.0.1:8787"
	defaultUserAgent = "dreamline/0.1"
	defaultTimeout   = 15 * time.Second
	maxErrorBody     = 4 << 10
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for apiURL, which may be a host:port or a full URL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Interpret posts the dream and decodes the interpretation. Non-2xx statuses
// are returned as *StatusError.
func (c *Client) Interpret(ctx context.Context, dream string) (Response, error) {
	if c == nil {
		return Response{}, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(Request{Dream: dream})
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}
	var payload Response
	if err := c.do(ctx, http.MethodPost, InterpretPath, body, &payload); err != nil {
		return Response{}, err
	}
	return payload, nil
}

// Health checks that the interpretation service answers.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, HealthPath, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Path:   rel.Path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
