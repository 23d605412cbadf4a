package domain

import "time"

// NewsItem is a geolocated news record rendered as a map marker.
type NewsItem struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	Headline        string     `json:"headline,omitempty"`
	Description     string     `json:"description,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	Category        string     `json:"category"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	SourceURL       string     `json:"source_url,omitempty"`
	DateTime        *time.Time `json:"date_time,omitempty"`
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewsFilter narrows a news listing
type NewsFilter struct {
	Category  string
	Lat       *float64
	Lng       *float64
	Radius    *float64
	StartDate *time.Time
	EndDate   *time.Time
}

// Params renders the filter as query parameters. Unset fields are omitted.
func (f NewsFilter) Params() map[string]string {
	params := make(map[string]string)
	if f.Category != "" {
		params["category"] = f.Category
	}
	if f.Lat != nil && f.Lng != nil && f.Radius != nil {
		params["lat"] = formatFloat(*f.Lat)
		params["lng"] = formatFloat(*f.Lng)
		params["radius"] = formatFloat(*f.Radius)
	}
	if f.StartDate != nil {
		params["start_date"] = f.StartDate.Format(time.RFC3339)
	}
	if f.EndDate != nil {
		params["end_date"] = f.EndDate.Format(time.RFC3339)
	}
	return params
}

// LocationSearch is a /news/search request, sent as a POST body or as GET
// query parameters.
type LocationSearch struct {
	Location  string     `json:"location"`
	Category  string     `json:"category,omitempty"`
	Radius    float64    `json:"radius,omitempty"` // km, backend default 10
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Params renders the search as query parameters for GET /news/search.
func (s LocationSearch) Params() map[string]string {
	params := map[string]string{"location": s.Location}
	if s.Category != "" {
		params["category"] = s.Category
	}
	if s.Radius > 0 {
		params["radius"] = formatFloat(s.Radius)
	}
	if s.StartDate != nil {
		params["start_date"] = s.StartDate.Format(time.RFC3339)
	}
	if s.EndDate != nil {
		params["end_date"] = s.EndDate.Format(time.RFC3339)
	}
	return params
}
