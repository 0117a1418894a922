package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Response is a verbatim reply from the sharing server.
type Response struct {
	Status int
	Body   []byte
}

// Client forwards validated requests to the sharing server, relaying the
// path, query, body and caller identity header unchanged and returning the
// upstream status and body verbatim.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a forwarding client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Forward sends the request to the sharing server. callerID is relayed via
// the X-Sharer-User-Id header when non-nil.
func (c *Client) Forward(ctx context.Context, method, path string, query url.Values, callerID *uuid.UUID, body []byte) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if callerID != nil {
		req.Header.Set("X-Sharer-User-Id", callerID.String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sharing server: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	return &Response{Status: resp.StatusCode, Body: payload}, nil
}
