package fallback

import (
	"time"

	"github.com/vietddude/newscatcher/internal/core/domain"
)

var fixtureTime = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) *time.Time {
	t := fixtureTime.Add(offset)
	return &t
}

func score(v float64) *float64 { return &v }

// Huntington, NY sample markers.
var newsFixtures = []domain.NewsItem{
	{
		ID:              1,
		Title:           "Town Board approves Main Street parking plan",
		Headline:        "New parking layout coming to Huntington village",
		Description:     "The Huntington Town Board voted to add 120 metered spaces along Main Street.",
		Summary:         "Parking expansion approved for Huntington village.",
		Category:        "Politics",
		Latitude:        40.8715,
		Longitude:       -73.4257,
		SourceURL:       "https://example.org/huntington/parking-plan",
		DateTime:        at(0),
		ConfidenceScore: score(0.92),
		CreatedAt:       fixtureTime,
		UpdatedAt:       fixtureTime,
	},
	{
		ID:              2,
		Title:           "Two-car collision closes Route 110",
		Headline:        "Route 110 reopened after morning crash",
		Description:     "Police closed Route 110 near Jericho Turnpike for two hours after a collision.",
		Summary:         "Route 110 crash caused delays.",
		Category:        "Crime & Safety",
		Latitude:        40.8317,
		Longitude:       -73.4120,
		SourceURL:       "https://example.org/huntington/route-110-crash",
		DateTime:        at(-3 * time.Hour),
		ConfidenceScore: score(0.88),
		CreatedAt:       fixtureTime,
		UpdatedAt:       fixtureTime,
	},
	{
		ID:              3,
		Title:           "Heckscher Park spring concert series announced",
		Headline:        "Free concerts return to Heckscher Park",
		Description:     "The Huntington Summer Arts Festival released its spring lineup.",
		Summary:         "Spring concert lineup announced.",
		Category:        "Arts & Culture",
		Latitude:        40.8747,
		Longitude:       -73.4197,
		SourceURL:       "https://example.org/huntington/heckscher-concerts",
		DateTime:        at(-24 * time.Hour),
		ConfidenceScore: score(0.95),
		CreatedAt:       fixtureTime,
		UpdatedAt:       fixtureTime,
	},
	{
		ID:              4,
		Title:           "School district presents budget proposal",
		Headline:        "Huntington UFSD budget up 2.1 percent",
		Description:     "The district outlined its proposed budget ahead of the May vote.",
		Summary:         "School budget proposal presented.",
		Category:        "Education",
		Latitude:        40.8682,
		Longitude:       -73.4115,
		SourceURL:       "https://example.org/huntington/school-budget",
		DateTime:        at(-48 * time.Hour),
		ConfidenceScore: score(0.9),
		CreatedAt:       fixtureTime,
		UpdatedAt:       fixtureTime,
	},
	{
		ID:              5,
		Title:           "Harbor cleanup draws 200 volunteers",
		Headline:        "Volunteers clear debris from Huntington Harbor",
		Description:     "Residents collected more than a ton of debris along the harbor shoreline.",
		Summary:         "Harbor cleanup a success.",
		Category:        "Environment",
		Latitude:        40.8951,
		Longitude:       -73.4268,
		SourceURL:       "https://example.org/huntington/harbor-cleanup",
		DateTime:        at(-72 * time.Hour),
		ConfidenceScore: score(0.86),
		CreatedAt:       fixtureTime,
		UpdatedAt:       fixtureTime,
	},
}

var scrapeLogFixtures = []domain.ScrapeLog{
	{
		ID:              1,
		StartTime:       fixtureTime.Add(-time.Hour),
		EndTime:         at(-55 * time.Minute),
		Status:          "completed",
		TotalItems:      24,
		SuccessfulItems: 22,
		ErrorItems:      2,
		LogDetails:      "offline sample run",
	},
	{
		ID:              2,
		StartTime:       fixtureTime.Add(-25 * time.Hour),
		EndTime:         at(-24*time.Hour - 50*time.Minute),
		Status:          "completed",
		TotalItems:      18,
		SuccessfulItems: 18,
	},
}

var sourceFixtures = []domain.DataSource{
	{
		ID:         1,
		SourceName: "Huntington Patch",
		URL:        "https://patch.com/new-york/huntington/rss",
		Category:   "Local",
		IsActive:   true,
		CreatedAt:  fixtureTime,
		UpdatedAt:  fixtureTime,
	},
	{
		ID:         2,
		SourceName: "Newsday Long Island",
		URL:        "https://www.newsday.com/long-island/rss",
		Category:   "Regional",
		IsActive:   true,
		CreatedAt:  fixtureTime,
		UpdatedAt:  fixtureTime,
	},
	{
		ID:         3,
		SourceName: "Google News: Huntington NY",
		URL:        "https://news.google.com/rss/search?q=Huntington+NY",
		Category:   "Aggregator",
		IsActive:   false,
		CreatedAt:  fixtureTime,
		UpdatedAt:  fixtureTime,
	},
}

var eventFixtures = []domain.Event{
	{
		ID:        1,
		Title:     "Huntington Farmers Market",
		Category:  "Community",
		Location:  "Elm Street Lot, Huntington",
		Latitude:  40.8718,
		Longitude: -73.4290,
		StartsAt:  fixtureTime.Add(48 * time.Hour),
	},
	{
		ID:        2,
		Title:     "Town Board meeting",
		Category:  "Politics",
		Location:  "Huntington Town Hall",
		Latitude:  40.8704,
		Longitude: -73.4272,
		StartsAt:  fixtureTime.Add(7 * 24 * time.Hour),
	},
}
