// Package status serves the client's local status endpoints: connectivity
// state, Prometheus metrics and a websocket stream of connectivity toasts.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/newscatcher/internal/infra/api/connectivity"
	"github.com/vietddude/newscatcher/internal/infra/api/transport"
)

const wsWriteTimeout = 5 * time.Second

// StateSource exposes connectivity. *connectivity.Monitor satisfies it.
type StateSource interface {
	State() connectivity.State
	LastProbe() (connectivity.ProbeResult, bool)
}

// StatsSource exposes transport counters. *transport.HTTPTransport satisfies it.
type StatsSource interface {
	Stats() transport.Stats
	BaseURL() string
}

// Report is the payload of GET /status.
type Report struct {
	Backend   string                    `json:"backend"`
	Mode      string                    `json:"mode"`
	State     connectivity.State        `json:"state"`
	LastProbe *connectivity.ProbeResult `json:"last_probe,omitempty"`
	Transport transport.Stats           `json:"transport"`
}

// Server provides HTTP endpoints for status monitoring.
type Server struct {
	state    StateSource
	stats    StatsSource
	hub      *Hub
	log      *slog.Logger
	router   chi.Router
	server   *http.Server
	upgrader websocket.Upgrader
}

// NewServer creates a new status server listening on port.
func NewServer(state StateSource, stats StatsSource, hub *Hub, port int) *Server {
	s := &Server{
		state: state,
		stats: stats,
		hub:   hub,
		log:   slog.Default().With("component", "status"),
		upgrader: websocket.Upgrader{
			CheckOrigin: sameOrigin,
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/ws", s.handleWS)
	r.Handle("/metrics", promhttp.Handler())
	s.router = r

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) report() Report {
	state := s.state.State()
	report := Report{
		Backend:   s.stats.BaseURL(),
		Mode:      "online",
		State:     state,
		Transport: s.stats.Stats(),
	}
	if !state.Reachable {
		report.Mode = "offline"
	}
	if last, ok := s.state.LastProbe(); ok {
		report.LastProbe = &last
	}
	return report
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.report()
	code := http.StatusOK
	if !report.State.Reachable {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": report.Mode})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.report())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	// Current state first so a fresh dashboard knows which mode it is in.
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(s.report()); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case n, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(n); err != nil {
				s.log.Debug("Websocket write failed", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(u.Host), strings.TrimSpace(r.Host))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
