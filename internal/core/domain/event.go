package domain

import "time"

// Event is a dated local happening shown on the events timeline
type Event struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	StartsAt  time.Time `json:"starts_at"`
	SourceURL string    `json:"source_url,omitempty"`
}

// HealthReport is the payload of GET /health.
type HealthReport struct {
	Status      string            `json:"status"`
	Version     string            `json:"version,omitempty"`
	Timestamp   string            `json:"timestamp,omitempty"`
	Services    map[string]string `json:"services,omitempty"`
	DBVersion   string            `json:"db_version,omitempty"`
	Environment string            `json:"environment,omitempty"`
	Error       string            `json:"error,omitempty"`
}
