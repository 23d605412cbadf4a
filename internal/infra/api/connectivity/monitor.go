// Package connectivity tracks whether the news backend is reachable.
//
// The Monitor is the only writer of the reachability flag. Readers call
// Reachable or State at any time without locking.
package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vietddude/newscatcher/internal/infra/api/transport"
	"github.com/vietddude/newscatcher/internal/metrics"
	"github.com/vietddude/newscatcher/internal/notify"
)

// Default probe settings.
const (
	DefaultHealthPath = "/health"
	DefaultTimeout    = 3 * time.Second
	DefaultInterval   = 30 * time.Second
)

// Prober sends the health request. *transport.HTTPTransport satisfies it.
type Prober interface {
	Do(ctx context.Context, d transport.RequestDescriptor) (*transport.Response, error)
}

// Config controls the probe target and cadence.
type Config struct {
	HealthPath string
	Timeout    time.Duration
	Interval   time.Duration
}

func (c Config) withDefaults() Config {
	if c.HealthPath == "" {
		c.HealthPath = DefaultHealthPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

// State is a point-in-time view of connectivity.
type State struct {
	Reachable     bool `json:"reachable"`
	CheckInFlight bool `json:"check_in_flight"`
}

// ProbeResult describes the last completed probe.
type ProbeResult struct {
	OK        bool          `json:"ok"`
	Latency   time.Duration `json:"latency"`
	Error     string        `json:"error,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Monitor periodically probes the backend health endpoint.
type Monitor struct {
	cfg      Config
	prober   Prober
	notifier notify.Notifier
	log      *slog.Logger

	reachable atomic.Bool
	inFlight  atomic.Bool

	mu   sync.RWMutex
	last *ProbeResult

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewMonitor creates a monitor that starts out optimistic (reachable).
func NewMonitor(prober Prober, notifier notify.Notifier, cfg Config, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	if notifier == nil {
		notifier = notify.Multi{}
	}
	m := &Monitor{
		cfg:      cfg.withDefaults(),
		prober:   prober,
		notifier: notifier,
		log:      log.With("component", "connectivity"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	m.reachable.Store(true)
	metrics.BackendReachable.Set(1)
	return m
}

// HealthPath returns the path used for liveness probes.
func (m *Monitor) HealthPath() string {
	return m.cfg.HealthPath
}

// Reachable reports the last known connectivity.
func (m *Monitor) Reachable() bool {
	return m.reachable.Load()
}

// State returns the current connectivity snapshot.
func (m *Monitor) State() State {
	return State{
		Reachable:     m.reachable.Load(),
		CheckInFlight: m.inFlight.Load(),
	}
}

// LastProbe returns the most recent probe outcome.
func (m *Monitor) LastProbe() (ProbeResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return ProbeResult{}, false
	}
	return *m.last, true
}

// Probe checks the health endpoint and updates the reachability flag. If a
// probe is already running, or ctx ends before the probe completes, it returns
// the last known state and leaves the flag untouched.
func (m *Monitor) Probe(ctx context.Context) bool {
	if !m.inFlight.CompareAndSwap(false, true) {
		metrics.ProbesTotal.WithLabelValues("skipped").Inc()
		m.log.Debug("Probe already in flight, using last known state")
		return m.reachable.Load()
	}
	defer m.inFlight.Store(false)

	start := time.Now()
	resp, err := m.prober.Do(ctx, transport.RequestDescriptor{
		Method:  http.MethodGet,
		Path:    m.cfg.HealthPath,
		Timeout: m.cfg.Timeout,
	})

	if ctxErr := ctx.Err(); ctxErr != nil {
		// The caller gave up; that says nothing about the backend.
		metrics.ProbesTotal.WithLabelValues("cancelled").Inc()
		m.log.Debug("Probe abandoned by caller", "error", ctxErr)
		return m.reachable.Load()
	}

	result := ProbeResult{
		Latency:   time.Since(start),
		CheckedAt: time.Now().UTC(),
	}
	switch {
	case err != nil:
		result.Error = err.Error()
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		result.Error = http.StatusText(resp.StatusCode)
	default:
		result.OK = true
	}

	m.mu.Lock()
	m.last = &result
	m.mu.Unlock()

	if result.OK {
		metrics.ProbesTotal.WithLabelValues("ok").Inc()
		m.markReachable(ctx, result)
		return true
	}

	metrics.ProbesTotal.WithLabelValues("failed").Inc()
	m.markUnreachable(ctx, result)
	return false
}

// Start probes once immediately and then on every interval until Stop is
// called or ctx is done. The cadence does not back off.
func (m *Monitor) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		go m.run(ctx)
	})
}

// Stop terminates the probe loop and waits for it to exit. A monitor that was
// never started cannot be started afterwards.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
	m.startOnce.Do(func() { close(m.doneCh) })
	<-m.doneCh
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.doneCh)

	m.Probe(ctx)

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Probe(ctx)
		case <-m.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) markReachable(ctx context.Context, result ProbeResult) {
	if !m.reachable.CompareAndSwap(false, true) {
		m.log.Debug("Backend healthy", "latency", result.Latency)
		return
	}

	metrics.BackendReachable.Set(1)
	metrics.TransitionsTotal.WithLabelValues("reachable").Inc()
	m.log.Info("Backend connection restored", "latency", result.Latency)
	m.notifier.Notify(ctx, notify.New(notify.KindRestored, ""))
}

func (m *Monitor) markUnreachable(ctx context.Context, result ProbeResult) {
	if !m.reachable.CompareAndSwap(true, false) {
		m.log.Debug("Backend still unreachable", "error", result.Error)
		return
	}

	metrics.BackendReachable.Set(0)
	metrics.TransitionsTotal.WithLabelValues("unreachable").Inc()
	m.log.Warn("Backend unreachable, switching to offline data", "error", result.Error)
	m.notifier.Notify(ctx, notify.New(notify.KindOffline, result.Error))
}
