package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/newscatcher/internal/infra/api/fallback"
	"github.com/vietddude/newscatcher/internal/infra/api/routing"
	"github.com/vietddude/newscatcher/internal/infra/api/transport"
	"github.com/vietddude/newscatcher/internal/metrics"
)

// Source tells where a response body came from.
type Source string

const (
	SourceLive    Source = "live"
	SourceOffline Source = "offline"
)

// Response is a successful call result. Live and offline bodies have the same
// JSON shape, so callers decode both the same way.
type Response struct {
	StatusCode int
	Body       json.RawMessage
	Source     Source
	Category   fallback.Category
	RequestID  string
	Attempts   int
}

// Offline reports whether the body was synthesized from the fallback catalog.
func (r *Response) Offline() bool {
	return r.Source == SourceOffline
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s response: %w", r.Source, err)
	}
	return nil
}

// Doer performs a single attempt. *transport.HTTPTransport satisfies it.
type Doer interface {
	Do(ctx context.Context, d transport.RequestDescriptor) (*transport.Response, error)
}

// ConnectivityMonitor is the read side of connectivity plus an on-demand probe.
// *connectivity.Monitor satisfies it.
type ConnectivityMonitor interface {
	Reachable() bool
	Probe(ctx context.Context) bool
	HealthPath() string
}

// Options configures a Client.
type Options struct {
	Retry   routing.RetryConfig
	Timeout time.Duration // per attempt; zero uses the transport default
	Logger  *slog.Logger
}

// CallOption adjusts a single call.
type CallOption func(*callConfig)

type callConfig struct {
	retry   routing.RetryConfig
	timeout time.Duration
}

// WithTimeout bounds each attempt of this call.
func WithTimeout(d time.Duration) CallOption {
	return func(c *callConfig) { c.timeout = d }
}

// WithRetry overrides the retry policy for this call. Unset delays take the
// defaults.
func WithRetry(cfg routing.RetryConfig) CallOption {
	return func(c *callConfig) { c.retry = cfg.WithDefaults() }
}

// Client wraps backend calls with retry and offline fallback.
type Client struct {
	doer    Doer
	monitor ConnectivityMonitor
	catalog *fallback.Catalog
	opts    Options
	log     *slog.Logger
}

// NewClient creates a resilient client. A nil catalog uses fallback.Default.
func NewClient(doer Doer, monitor ConnectivityMonitor, catalog *fallback.Catalog, opts Options) *Client {
	if catalog == nil {
		catalog = fallback.Default()
	}
	if opts.Retry == (routing.RetryConfig{}) {
		opts.Retry = routing.DefaultRetryConfig
	}
	opts.Retry = opts.Retry.WithDefaults()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		doer:    doer,
		monitor: monitor,
		catalog: catalog,
		opts:    opts,
		log:     log.With("component", "api"),
	}
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, params, nil, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body, opts...)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

// Do runs one logical call.
//
// If the backend is known to be unreachable the call is answered from the
// fallback catalog without touching the network. Otherwise network-class
// failures are retried with exponential backoff; once retries are spent the
// monitor re-probes and the call is answered from the catalog. Application
// errors (*transport.StatusError) are returned unchanged and never retried.
// Calls to the health path are never substituted.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	params map[string]string,
	body any,
	opts ...CallOption,
) (*Response, error) {
	cfg := callConfig{retry: c.opts.Retry, timeout: c.opts.Timeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := transport.RequestDescriptor{
		ID:      uuid.NewString(),
		Method:  method,
		Path:    path,
		Params:  params,
		Body:    body,
		Timeout: cfg.timeout,
	}
	category := fallback.CategoryFor(path)
	log := c.log.With("request_id", d.ID, "method", method, "path", path)

	if !c.monitor.Reachable() && !c.isHealthPath(path) {
		return c.fallbackOrFail(ctx, d, category, reasonPreflight, nil, log)
	}

	log.Debug("Sending request")
	start := time.Now()

	resp, attempts, err := routing.CallWithRetry(ctx, cfg.retry,
		func(ctx context.Context, attempt int) (*transport.Response, error) {
			d.Attempt = attempt
			return c.doer.Do(ctx, d)
		},
		func(attempt int, delay time.Duration, err error) {
			metrics.RetriesTotal.WithLabelValues(method, string(category)).Inc()
			log.Warn("Request failed, retrying",
				"attempt", attempt,
				"max_attempts", cfg.retry.MaxRetries+1,
				"delay", delay,
				"error", err,
			)
		},
	)
	metrics.RequestLatency.WithLabelValues(method, string(category)).Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.RequestsTotal.WithLabelValues(method, string(category), "live").Inc()
		log.Debug("Request succeeded", "status", resp.StatusCode, "attempts", attempts, "latency", resp.Latency)
		return &Response{
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Source:     SourceLive,
			Category:   category,
			RequestID:  d.ID,
			Attempts:   attempts,
		}, nil
	}

	if routing.ClassifyError(err) == routing.ActionRetry {
		log.Warn("Request exhausted retries", "attempts", attempts, "error", err)
		c.monitor.Probe(context.WithoutCancel(ctx))
		d.Attempt = attempts
		return c.fallbackOrFail(ctx, d, category, reasonExhausted, err, log)
	}

	metrics.RequestsTotal.WithLabelValues(method, string(category), "error").Inc()
	log.Info("Request failed", "attempts", attempts, "status", transport.StatusCode(err), "error", err)
	return nil, err
}

const (
	reasonPreflight = "preflight"
	reasonExhausted = "exhausted"
)

// fallbackOrFail is the single place where an unreachable backend turns into an
// offline response. The health path has nothing to substitute and fails.
func (c *Client) fallbackOrFail(
	ctx context.Context,
	d transport.RequestDescriptor,
	category fallback.Category,
	reason string,
	cause error,
	log *slog.Logger,
) (*Response, error) {
	if c.isHealthPath(d.Path) {
		metrics.RequestsTotal.WithLabelValues(d.Method, string(category), "error").Inc()
		if cause == nil {
			cause = fmt.Errorf("%s %s: backend unreachable", d.Method, d.Path)
		}
		return nil, cause
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics.FallbacksTotal.WithLabelValues(string(category), reason).Inc()
	metrics.RequestsTotal.WithLabelValues(d.Method, string(category), "offline").Inc()
	log.Info("Serving offline data", "category", category, "reason", reason)

	return &Response{
		StatusCode: http.StatusOK,
		Body:       c.catalog.Lookup(d.Path),
		Source:     SourceOffline,
		Category:   category,
		RequestID:  d.ID,
		Attempts:   d.Attempt,
	}, nil
}

func (c *Client) isHealthPath(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.TrimRight(path, "/") == strings.TrimRight(c.monitor.HealthPath(), "/")
}
