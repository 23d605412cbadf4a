// Package transport issues single HTTP requests against the news backend and
// separates network-class failures from application errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// RequestDescriptor describes one logical call. It is owned by the client
// invocation that created it and discarded once the call resolves.
type RequestDescriptor struct {
	ID      string
	Method  string
	Path    string
	Params  map[string]string
	Body    any
	Attempt int

	// Timeout bounds a single attempt. Zero uses the transport default.
	Timeout time.Duration
}

// Response is a raw backend reply with a 2xx/3xx status.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Latency    time.Duration
}

// Stats summarizes transport activity.
type Stats struct {
	Requests      int           `json:"requests"`
	Failures      int           `json:"failures"`
	ErrorRate     float64       `json:"error_rate"`
	Latency       time.Duration `json:"avg_latency"`
	LastSuccessAt time.Time     `json:"last_success_at"`
	LastFailureAt time.Time     `json:"last_failure_at"`
}

// HTTPTransport sends JSON requests to a fixed base URL.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	stats        Stats
	totalLatency time.Duration
	successCount int
}

// NewHTTPTransport creates a transport with the given per-request timeout.
// It is a hard ceiling: a larger RequestDescriptor.Timeout has no effect.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BaseURL returns the backend root every path is resolved against.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Do performs a single attempt. Failures without an HTTP response are returned
// as *NetworkError, error statuses as *StatusError. Cancellation of ctx by the
// caller is returned as the context error itself.
func (t *HTTPTransport) Do(ctx context.Context, d RequestDescriptor) (*Response, error) {
	start := time.Now()

	method := strings.ToUpper(d.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := t.resolve(d.Path, d.Params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if d.Body != nil {
		data, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	attemptCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.ID != "" {
		req.Header.Set("X-Request-ID", d.ID)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.recordFailure()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", method, d.Path, ctxErr)
		}
		return nil, &NetworkError{Method: method, Path: d.Path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.recordFailure()
		return nil, &NetworkError{Method: method, Path: d.Path, Err: fmt.Errorf("read response: %w", err)}
	}

	latency := time.Since(start)

	if resp.StatusCode >= http.StatusBadRequest {
		// The backend answered, so the link itself is healthy.
		t.recordSuccess(latency)
		return nil, &StatusError{
			Method:     method,
			Path:       d.Path,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}

	t.recordSuccess(latency)
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Latency:    latency,
	}, nil
}

// Stats returns a snapshot of transport counters.
func (t *HTTPTransport) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// Close releases idle connections.
func (t *HTTPTransport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}

func (t *HTTPTransport) resolve(path string, params map[string]string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(t.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (t *HTTPTransport) recordSuccess(latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.successCount++
	t.stats.Requests++
	t.totalLatency += latency
	t.stats.LastSuccessAt = time.Now()

	t.stats.ErrorRate = float64(t.stats.Failures) / float64(t.stats.Requests)
	t.stats.Latency = t.totalLatency / time.Duration(t.successCount)
}

func (t *HTTPTransport) recordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.Failures++
	t.stats.Requests++
	t.stats.LastFailureAt = time.Now()
	t.stats.ErrorRate = float64(t.stats.Failures) / float64(t.stats.Requests)
}
