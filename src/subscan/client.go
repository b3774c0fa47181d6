// Package subscan is a thin client for the Subscan indexed HTTP API.
// API-level failures (non-zero response code), HTTP status failures and
// transport failures are surfaced as distinct error types so callers can
// tell a bad request from an unreachable backend.
package subscan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is an error code reported in an otherwise successful HTTP
// response body (Subscan uses code 0 for success).
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("subscan API error %d: %s", e.Code, e.Message)
}

// HTTPError is a non-2xx HTTP response.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("subscan HTTP %d: %.200s", e.Status, e.Body)
}

// NetworkError is a transport-level failure (timeout, DNS, refused).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("subscan network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client calls the Subscan API for any network's base URL.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Call performs one API request and returns the decoded JSON body.
func (c *Client) Call(ctx context.Context, baseURL, method, path string, body map[string]any) (map[string]any, error) {
	if method == "" {
		method = http.MethodPost
	}
	url := strings.TrimRight(baseURL, "/") + path

	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(blob)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if code, ok := payload["code"].(float64); ok && code != 0 {
		msg, _ := payload["message"].(string)
		if msg == "" {
			msg = "unknown Subscan API error"
		}
		return nil, &APIError{Code: int(code), Message: msg}
	}

	return payload, nil
}
