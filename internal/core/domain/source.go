package domain

import (
	"strconv"
	"time"
)

// DataSource is a feed the backend scrapes for news.
type DataSource struct {
	ID         int       `json:"id"`
	SourceName string    `json:"source_name"`
	URL        string    `json:"url"`
	Category   string    `json:"category"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScrapeLog records one scraping run.
type ScrapeLog struct {
	ID              int        `json:"id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status"`
	TotalItems      int        `json:"total_items"`
	SuccessfulItems int        `json:"successful_items"`
	ErrorItems      int        `json:"error_items"`
	LogDetails      string     `json:"log_details,omitempty"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
