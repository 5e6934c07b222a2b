// Package client is the HTTP surface of the remote analytics service: five
// operations, JSON in and out except the CSV export.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pairwatch/config"
)

// ErrNoData marks an analytics answer with no series yet (the backend is
// still buffering). Pollers treat it like a transient miss.
var ErrNoData = errors.New("no data available")

// APIError is a non-2xx answer. Detail carries the backend's human-readable
// explanation when one was provided.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the analytics service. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the service at baseURL. timeout bounds every
// request end to end; zero keeps the 10s default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL reports the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Status fetches the pipeline run-state.
func (c *Client) Status(ctx context.Context) (*PipelineStatus, error) {
	var status PipelineStatus
	if err := c.doJSON(ctx, http.MethodGet, "/pipeline/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Analytics fetches one snapshot for the given request. Returns ErrNoData
// when the backend has nothing to report yet.
func (c *Client) Analytics(ctx context.Context, req AnalyticsRequest) (*AnalyticsSnapshot, error) {
	var snap AnalyticsSnapshot
	if err := c.doJSON(ctx, http.MethodPost, "/analytics", req, &snap); err != nil {
		return nil, err
	}
	if snap.Status == "no_data" || len(snap.Timestamps) == 0 {
		return nil, ErrNoData
	}
	return &snap, nil
}

// Export renders the analytics for req as CSV and returns the raw bytes.
func (c *Client) Export(ctx context.Context, req AnalyticsRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export request: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/analytics/export", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export payload: %w", err)
	}
	return data, nil
}

// Start launches the pipeline with the full watch configuration.
func (c *Client) Start(ctx context.Context, w config.WatchConfig) error {
	return c.doJSON(ctx, http.MethodPost, "/pipeline/start", w, nil)
}

// Stop halts the pipeline.
func (c *Client) Stop(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/pipeline/stop", struct{}{}, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var detail struct {
		Detail string `json:"detail"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &detail) == nil {
		apiErr.Detail = detail.Detail
	}
	return apiErr
}
