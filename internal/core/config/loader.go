package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// EnvBaseURL overrides api.base_url when set.
const EnvBaseURL = "NEWSCATCHER_API_URL"

const (
	defaultBaseURL      = "http://localhost:8000"
	defaultTimeout      = 10 * time.Second
	defaultHealthPath   = "/health"
	defaultProbeTimeout = 3 * time.Second
	defaultInterval     = 30 * time.Second
	defaultMaxRetries   = 2
	defaultInitialDelay = time.Second
	defaultMaxDelay     = 30 * time.Second
	defaultPort         = 8080
)

// Load reads configuration from a YAML file. An empty path yields the
// defaults.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.API.BaseURL = url
	}

	applyDefaults(&cfg)

	if cfg.Retry.InitialDelay > cfg.Retry.MaxDelay {
		return nil, fmt.Errorf("retry.initial_delay %s exceeds retry.max_delay %s", cfg.Retry.InitialDelay, cfg.Retry.MaxDelay)
	}
	if cfg.Monitor.ProbeTimeout > cfg.API.Timeout {
		return nil, fmt.Errorf("monitor.probe_timeout %s exceeds api.timeout %s", cfg.Monitor.ProbeTimeout, cfg.API.Timeout)
	}
	if *cfg.Retry.MaxRetries < 0 {
		return nil, fmt.Errorf("retry.max_retries must not be negative, got %d", *cfg.Retry.MaxRetries)
	}

	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultTimeout
	}

	if cfg.Monitor.HealthPath == "" {
		cfg.Monitor.HealthPath = defaultHealthPath
	}
	if cfg.Monitor.ProbeTimeout == 0 {
		cfg.Monitor.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = defaultInterval
	}

	if cfg.Retry.MaxRetries == nil {
		n := defaultMaxRetries
		cfg.Retry.MaxRetries = &n
	}
	if cfg.Retry.InitialDelay == 0 {
		cfg.Retry.InitialDelay = defaultInitialDelay
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = defaultMaxDelay
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}
