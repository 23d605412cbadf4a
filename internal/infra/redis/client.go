// Package redis publishes connectivity notifications over Redis pub/sub so
// dashboards on other hosts can show the same toasts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/newscatcher/internal/notify"
)

// DefaultChannel is used when Config.Channel is empty.
const DefaultChannel = "newscatcher:connectivity"

const publishTimeout = 2 * time.Second

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
}

// Enabled reports whether a Redis URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

type publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Client wraps a Redis connection used for notification fan-out.
type Client struct {
	rdb     publisher
	closer  func() error
	channel string
	log     *slog.Logger
}

// NewClient creates a new Redis client and verifies the connection.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newClient(rdb, rdb.Close, cfg.Channel), nil
}

func newClient(rdb publisher, closer func() error, channel string) *Client {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Client{
		rdb:     rdb,
		closer:  closer,
		channel: channel,
		log:     slog.Default().With("component", "redis"),
	}
}

// Channel returns the pub/sub channel notifications are published to.
func (c *Client) Channel() string {
	return c.channel
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// Publish sends a notification as JSON and returns the number of receivers.
func (c *Client) Publish(ctx context.Context, n notify.Notification) (int64, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return 0, fmt.Errorf("marshal notification: %w", err)
	}
	receivers, err := c.rdb.Publish(ctx, c.channel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("publish failed: %w", err)
	}
	return receivers, nil
}

// Notify publishes in the background so a slow Redis never delays the caller.
func (c *Client) Notify(ctx context.Context, n notify.Notification) {
	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if _, err := c.Publish(pubCtx, n); err != nil {
			c.log.Warn("Failed to publish notification", "kind", n.Kind, "error", err)
		}
	}()
}
