package config

import (
	"time"

	redisclient "github.com/vietddude/newscatcher/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API     APIConfig          `yaml:"api"`
	Monitor MonitorConfig      `yaml:"monitor"`
	Retry   RetryConfig        `yaml:"retry"`
	Server  ServerConfig       `yaml:"server"`
	Redis   redisclient.Config `yaml:"redis"`
	Logging LoggingConfig      `yaml:"logging"`
}

// APIConfig points the client at the news backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // per attempt
}

// MonitorConfig holds health probe settings.
type MonitorConfig struct {
	HealthPath   string        `yaml:"health_path"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Interval     time.Duration `yaml:"interval"`
}

// RetryConfig holds the retry policy for network failures.
type RetryConfig struct {
	MaxRetries   *int          `yaml:"max_retries"` // nil = default, 0 = no retries
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
}

// ServerConfig holds local status server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
