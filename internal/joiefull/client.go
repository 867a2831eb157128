package joiefull

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

// API is the surface the rest of the application needs from the Joiefull
// service. Implemented by *Client; test code substitutes its own.
type API interface {
	FetchCatalog(ctx context.Context) ([]Clothing, error)
	SubmitReview(ctx context.Context, clothingID int, review string, rating int) error
	SubmitLike(ctx context.Context, clothingID int, liked bool) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the Joiefull HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the hosted catalog used when the config names none.
	DefaultBaseURL = "https://raw.githubusercontent.com/OpenClassrooms-Student-Center/" +
		"Cr-ez-une-interface-dynamique-et-accessible-avec-SwiftUI/main/api"

	defaultUserAgent = "penderie/0.1"
	defaultTimeout   = 10 * time.Second

	catalogPath = "/clothes.json"
	reviewPath  = "/review"
	likePath    = "/like"
)

// NewClient builds a Client for the given base URL. An empty base URL selects
// DefaultBaseURL; a zero timeout selects the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchCatalog retrieves and decodes the full clothing catalog. A payload
// element missing any required field fails the whole fetch; no partial
// catalogs are returned.
func (c *Client) FetchCatalog(ctx context.Context) ([]Clothing, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.get(ctx, catalogPath)
	if err != nil {
		return nil, err
	}

	var wire []clothingWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &DecodeError{Err: err}
	}
	clothes := make([]Clothing, 0, len(wire))
	for _, w := range wire {
		if err := w.validate(); err != nil {
			return nil, &DecodeError{Err: err}
		}
		clothes = append(clothes, w.clothing())
	}
	return clothes, nil
}

// SubmitReview posts one review with its rating. No retry is attempted.
func (c *Client) SubmitReview(ctx context.Context, clothingID int, review string, rating int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.post(ctx, reviewPath, map[string]any{
		"clothing_id": clothingID,
		"review":      review,
		"rating":      rating,
	})
}

// SubmitLike mirrors a favorite toggle to the server. No retry is attempted.
func (c *Client) SubmitLike(ctx context.Context, clothingID int, liked bool) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.post(ctx, likePath, map[string]any{
		"clothing_id": clothingID,
		"is_liked":    liked,
	})
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	// The catalog must always reflect the latest server prices and likes.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	// Success bodies are ignored; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	rel := &url.URL{Path: c.baseURL.Path + path}
	return c.baseURL.ResolveReference(rel).String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
