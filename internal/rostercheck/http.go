package rostercheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader matches the header the service echoes.
const requestIDHeader = "X-Request-ID"

// Client issues tagged requests against the service.
type Client struct {
	base   string
	client *http.Client
}

// NewClient creates a client with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Response is a decoded reply plus the headers the checks care about.
type Response struct {
	Status    int
	ETag      string
	RequestID string
}

// Do sends method to path and decodes a 200 body into out when out is not nil.
// Every request carries a fresh X-Request-ID; a reply echoing a different id
// is reported as an error.
func (c *Client) Do(ctx context.Context, method, path string, header http.Header, out any) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, http.NoBody)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	id := uuid.NewString()
	req.Header.Set(requestIDHeader, id)

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	r := Response{
		Status:    resp.StatusCode,
		ETag:      resp.Header.Get("ETag"),
		RequestID: resp.Header.Get(requestIDHeader),
	}
	if r.RequestID != id {
		return r, fmt.Errorf("%w: %s %s echoed request id %q, sent %q", ErrInvariant, method, path, r.RequestID, id)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return r, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode == http.StatusNotModified {
		return r, nil
	}
	if resp.StatusCode != http.StatusOK {
		return r, fmt.Errorf("%w: %s %s: %d %s", ErrStatus, method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return r, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return r, nil
}

// Get is Do with GET and no extra headers.
func (c *Client) Get(ctx context.Context, path string, out any) (Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}
