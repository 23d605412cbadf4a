// Package api provides the offline-resilient client for the News Catcher backend.
//
// This package offers:
//   - Connectivity monitoring against the backend health endpoint
//   - Retry with exponential backoff for network-class failures
//   - Offline fallback data when the backend cannot be reached
//
// # Quick Start
//
//	import "github.com/vietddude/newscatcher/internal/infra/api"
//
//	tr := api.NewHTTPTransport(baseURL, 10*time.Second)
//	monitor := api.NewMonitor(tr, notify.NewLogNotifier(nil), api.MonitorConfig{})
//	monitor.Start(ctx)
//	defer monitor.Stop()
//
//	client := api.NewClient(tr, monitor, nil, api.Options{})
//	resp, err := client.Get(ctx, "/news", nil)
//	// resp.Offline() is true when the body came from the fallback catalog.
//
// # Package Structure
//
//   - transport/    - single HTTP attempts, network vs application errors
//   - routing/      - error classification and retry with backoff
//   - connectivity/ - health probe loop and reachability flag
//   - fallback/     - static offline catalog
//
// Most types are re-exported at the root level for convenience.
package api

import (
	"log/slog"
	"time"

	"github.com/vietddude/newscatcher/internal/infra/api/connectivity"
	"github.com/vietddude/newscatcher/internal/infra/api/routing"
	"github.com/vietddude/newscatcher/internal/infra/api/transport"
	"github.com/vietddude/newscatcher/internal/notify"
)

// HTTPTransport sends single requests to the backend.
type HTTPTransport = transport.HTTPTransport

// RequestDescriptor describes one logical call.
type RequestDescriptor = transport.RequestDescriptor

// StatusError is an application error returned by the backend.
type StatusError = transport.StatusError

// NetworkError is a transport-level failure.
type NetworkError = transport.NetworkError

// Monitor tracks backend reachability.
type Monitor = connectivity.Monitor

// MonitorConfig controls probe target and cadence.
type MonitorConfig = connectivity.Config

// ConnectivityState is a point-in-time view of connectivity.
type ConnectivityState = connectivity.State

// RetryConfig defines retry behavior.
type RetryConfig = routing.RetryConfig

// DefaultRetryConfig gives 3 attempts in total, waiting 1s then 2s.
var DefaultRetryConfig = routing.DefaultRetryConfig

// NewHTTPTransport creates a transport with the given per-request timeout.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return transport.NewHTTPTransport(baseURL, timeout)
}

// NewMonitor creates a connectivity monitor using the default logger.
func NewMonitor(prober connectivity.Prober, notifier notify.Notifier, cfg MonitorConfig) *Monitor {
	return connectivity.NewMonitor(prober, notifier, cfg, slog.Default())
}
