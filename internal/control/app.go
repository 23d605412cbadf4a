// Package control assembles the client stack and manages its lifecycle.
package control

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vietddude/newscatcher/internal/core/config"
	"github.com/vietddude/newscatcher/internal/infra/api"
	"github.com/vietddude/newscatcher/internal/infra/api/connectivity"
	"github.com/vietddude/newscatcher/internal/infra/api/fallback"
	"github.com/vietddude/newscatcher/internal/infra/api/routing"
	"github.com/vietddude/newscatcher/internal/infra/api/transport"
	redisclient "github.com/vietddude/newscatcher/internal/infra/redis"
	"github.com/vietddude/newscatcher/internal/newsapi"
	"github.com/vietddude/newscatcher/internal/notify"
	"github.com/vietddude/newscatcher/internal/status"
)

// App owns the transport, connectivity monitor, resilient client and the
// local status server.
type App struct {
	cfg          *config.AppConfig
	transport    *transport.HTTPTransport
	monitor      *connectivity.Monitor
	client       *api.Client
	news         *newsapi.Service
	hub          *status.Hub
	statusServer *status.Server
	redisClient  *redisclient.Client
	log          *slog.Logger
}

// NewApp wires every component from cfg. Redis is optional: a connection
// failure is logged and notifications stay local.
func NewApp(cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	log := slog.Default()

	httpTransport := transport.NewHTTPTransport(cfg.API.BaseURL, cfg.API.Timeout)
	hub := status.NewHub()

	notifiers := notify.Multi{notify.NewLogNotifier(log), hub}

	var redisClient *redisclient.Client
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, notifications stay local", "error", err)
		} else {
			notifiers = append(notifiers, redisClient)
			log.Info("Publishing connectivity notifications", "channel", redisClient.Channel())
		}
	}

	monitor := connectivity.NewMonitor(httpTransport, notifiers, connectivity.Config{
		HealthPath: cfg.Monitor.HealthPath,
		Timeout:    cfg.Monitor.ProbeTimeout,
		Interval:   cfg.Monitor.Interval,
	}, log)

	retry := routing.DefaultRetryConfig
	if cfg.Retry.MaxRetries != nil {
		retry.MaxRetries = *cfg.Retry.MaxRetries
	}
	if cfg.Retry.InitialDelay > 0 {
		retry.InitialDelay = cfg.Retry.InitialDelay
	}
	if cfg.Retry.MaxDelay > 0 {
		retry.MaxDelay = cfg.Retry.MaxDelay
	}

	client := api.NewClient(httpTransport, monitor, fallback.Default(), api.Options{
		Retry:   retry,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})

	return &App{
		cfg:          cfg,
		transport:    httpTransport,
		monitor:      monitor,
		client:       client,
		news:         newsapi.NewService(client),
		hub:          hub,
		statusServer: status.NewServer(monitor, httpTransport, hub, cfg.Server.Port),
		redisClient:  redisClient,
		log:          log,
	}, nil
}

// Client returns the resilient API client.
func (a *App) Client() *api.Client { return a.client }

// News returns the typed news backend service.
func (a *App) News() *newsapi.Service { return a.news }

// Monitor returns the connectivity monitor.
func (a *App) Monitor() *connectivity.Monitor { return a.monitor }

// StatusHandler returns the status server's handler.
func (a *App) StatusHandler() http.Handler { return a.statusServer.Handler() }

// Start launches the monitor and, when serve is set, the status server.
func (a *App) Start(ctx context.Context, serve bool) error {
	a.log.Info("Starting newscatcher client",
		"backend", a.transport.BaseURL(),
		"health_path", a.monitor.HealthPath(),
	)

	a.monitor.Start(ctx)

	if serve {
		go func() {
			if err := a.statusServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("Status server failed", "error", err)
			}
		}()
		a.log.Info("Status server listening", "port", a.cfg.Server.Port)
	}
	return nil
}

// Stop stops the monitor, closes Redis and shuts the status server down.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping newscatcher client...")

	a.monitor.Stop()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if err := a.transport.Close(); err != nil {
		a.log.Warn("Failed to close transport", "error", err)
	}

	return a.statusServer.Stop(ctx)
}
