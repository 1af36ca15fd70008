// ABOUTME: REST client for the trail service that stores trails and hikes
// ABOUTME: Sends bearer-authenticated JSON requests and maps failures to typed errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is matched by errors.Is for 404 responses.
var ErrNotFound = errors.New("not found")

// ErrNoBaseURL is returned when the client has no service URL configured.
var ErrNoBaseURL = errors.New("trail service URL not configured")

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4096

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the trail service.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the service at baseURL.
// An empty token sends no Authorization header.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL.JoinPath(escaped...).String()
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method string, out any, body any, parts ...string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := c.endpoint(parts...)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request", "method", method, "url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       req.URL.Path,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListTrails returns all trails.
func (c *Client) ListTrails(ctx context.Context) ([]Trail, error) {
	var trails []Trail
	if err := c.do(ctx, http.MethodGet, &trails, nil, "trails"); err != nil {
		return nil, err
	}
	return trails, nil
}

// GetTrail returns one trail.
func (c *Client) GetTrail(ctx context.Context, id string) (*Trail, error) {
	var trail Trail
	if err := c.do(ctx, http.MethodGet, &trail, nil, "trails", id); err != nil {
		return nil, err
	}
	return &trail, nil
}

// CreateTrail stores a new trail and returns it as saved.
func (c *Client) CreateTrail(ctx context.Context, trail *Trail) (*Trail, error) {
	var created Trail
	if err := c.do(ctx, http.MethodPost, &created, trail, "trails"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTrail replaces a trail. Both trace fields are always sent.
func (c *Client) UpdateTrail(ctx context.Context, trail *Trail) error {
	if trail.ID == "" {
		return errors.New("update trail: missing id")
	}
	return c.do(ctx, http.MethodPut, nil, trail, "trails", trail.ID)
}

// ListHikes returns all hikes.
func (c *Client) ListHikes(ctx context.Context) ([]Hike, error) {
	var hikes []Hike
	if err := c.do(ctx, http.MethodGet, &hikes, nil, "hikes"); err != nil {
		return nil, err
	}
	return hikes, nil
}

// GetHike returns one hike.
func (c *Client) GetHike(ctx context.Context, id string) (*Hike, error) {
	var hike Hike
	if err := c.do(ctx, http.MethodGet, &hike, nil, "hikes", id); err != nil {
		return nil, err
	}
	return &hike, nil
}

// CreateHike stores a new hike and returns it as saved.
func (c *Client) CreateHike(ctx context.Context, hike *Hike) (*Hike, error) {
	var created Hike
	if err := c.do(ctx, http.MethodPost, &created, hike, "hikes"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateHike replaces a hike. Both track fields are always sent.
func (c *Client) UpdateHike(ctx context.Context, hike *Hike) error {
	if hike.ID == "" {
		return errors.New("update hike: missing id")
	}
	return c.do(ctx, http.MethodPut, nil, hike, "hikes", hike.ID)
}
