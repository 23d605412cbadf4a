// Package newsapi exposes typed News Catcher endpoints on top of the resilient
// client. Every listing decodes live and offline bodies the same way, so the
// dashboard has a single rendering path.
package newsapi

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/vietddude/newscatcher/internal/core/domain"
	"github.com/vietddude/newscatcher/internal/infra/api"
)

// Caller is the subset of *api.Client used here.
type Caller interface {
	Get(ctx context.Context, path string, params map[string]string, opts ...api.CallOption) (*api.Response, error)
	Post(ctx context.Context, path string, body any, opts ...api.CallOption) (*api.Response, error)
	Put(ctx context.Context, path string, body any, opts ...api.CallOption) (*api.Response, error)
}

// Result carries decoded records and where they came from.
type Result[T any] struct {
	Items   []T
	Offline bool
}

// Service wraps the backend endpoints.
type Service struct {
	client Caller
}

// NewService creates a Service.
func NewService(client Caller) *Service {
	return &Service{client: client}
}

// ListNews returns news items matching the filter.
func (s *Service) ListNews(ctx context.Context, filter domain.NewsFilter) (Result[domain.NewsItem], error) {
	return list[domain.NewsItem](ctx, s.client, "/news", filter.Params())
}

// SearchNews geocodes a location on the backend and returns nearby items.
// An unknown location is an application error (404) and is returned as is.
func (s *Service) SearchNews(ctx context.Context, search domain.LocationSearch) (Result[domain.NewsItem], error) {
	if search.Location == "" {
		return Result[domain.NewsItem]{}, errors.New("search location is required")
	}
	resp, err := s.client.Post(ctx, "/news/search", search)
	if err != nil {
		return Result[domain.NewsItem]{}, err
	}
	return decodeList[domain.NewsItem](resp)
}

// SearchNewsByQuery is SearchNews over GET /news/search with query parameters.
func (s *Service) SearchNewsByQuery(ctx context.Context, search domain.LocationSearch) (Result[domain.NewsItem], error) {
	if search.Location == "" {
		return Result[domain.NewsItem]{}, errors.New("search location is required")
	}
	return list[domain.NewsItem](ctx, s.client, "/news/search", search.Params())
}

// NewsAPINews asks the backend to pull NewsAPI.org articles for location.
func (s *Service) NewsAPINews(ctx context.Context, location string) (Result[domain.NewsItem], error) {
	if location == "" {
		return Result[domain.NewsItem]{}, errors.New("location is required")
	}
	return list[domain.NewsItem](ctx, s.client, "/newsapi/"+url.PathEscape(location), nil)
}

// RSSNews asks the backend to pull local RSS feeds for location.
func (s *Service) RSSNews(ctx context.Context, location string) (Result[domain.NewsItem], error) {
	if location == "" {
		return Result[domain.NewsItem]{}, errors.New("location is required")
	}
	return list[domain.NewsItem](ctx, s.client, "/rss-news/"+url.PathEscape(location), nil)
}

// HuntingtonNews returns stored Huntington, NY news, refreshed by the backend
// when it has none.
func (s *Service) HuntingtonNews(ctx context.Context) (Result[domain.NewsItem], error) {
	return list[domain.NewsItem](ctx, s.client, "/huntington-news", nil)
}

// ComprehensiveHuntingtonNews fetches Huntington news from every backend source.
func (s *Service) ComprehensiveHuntingtonNews(ctx context.Context) (Result[domain.NewsItem], error) {
	return list[domain.NewsItem](ctx, s.client, "/huntington-news/comprehensive", nil)
}

// CreateNews stores a news item. While offline the backend cannot accept
// writes; ok is false and item is nil in that case.
func (s *Service) CreateNews(ctx context.Context, item domain.NewsItem) (*domain.NewsItem, bool, error) {
	return write[domain.NewsItem](ctx, s.client.Post, "/news", item)
}

// ListSources returns configured data sources.
func (s *Service) ListSources(ctx context.Context, category string, activeOnly bool) (Result[domain.DataSource], error) {
	params := map[string]string{}
	if category != "" {
		params["category"] = category
	}
	if activeOnly {
		params["active_only"] = "true"
	}
	return list[domain.DataSource](ctx, s.client, "/sources", params)
}

// CreateSource registers a new data source.
func (s *Service) CreateSource(ctx context.Context, source domain.DataSource) (*domain.DataSource, bool, error) {
	return write[domain.DataSource](ctx, s.client.Post, "/sources", source)
}

// ToggleSource flips a data source's active flag.
func (s *Service) ToggleSource(ctx context.Context, id int) (*domain.DataSource, bool, error) {
	return write[domain.DataSource](ctx, s.client.Put, "/sources/"+strconv.Itoa(id)+"/toggle", nil)
}

// TriggerScrape starts a background scraping run.
func (s *Service) TriggerScrape(ctx context.Context) (*domain.ScrapeLog, bool, error) {
	return write[domain.ScrapeLog](ctx, s.client.Post, "/scrape", nil)
}

// ListScrapeLogs returns the most recent scrape runs.
func (s *Service) ListScrapeLogs(ctx context.Context, limit int) (Result[domain.ScrapeLog], error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	return list[domain.ScrapeLog](ctx, s.client, "/logs", params)
}

// ListEvents returns upcoming local events.
func (s *Service) ListEvents(ctx context.Context) (Result[domain.Event], error) {
	return list[domain.Event](ctx, s.client, "/events", nil)
}

// Health fetches the backend health report. It is never answered offline.
func (s *Service) Health(ctx context.Context) (*domain.HealthReport, error) {
	resp, err := s.client.Get(ctx, "/health", nil)
	if err != nil {
		return nil, err
	}
	var report domain.HealthReport
	if err := resp.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

func list[T any](ctx context.Context, c Caller, path string, params map[string]string) (Result[T], error) {
	resp, err := c.Get(ctx, path, params)
	if err != nil {
		return Result[T]{}, err
	}
	return decodeList[T](resp)
}

func decodeList[T any](resp *api.Response) (Result[T], error) {
	var items []T
	if err := resp.Decode(&items); err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Items: items, Offline: resp.Offline()}, nil
}

type sendFunc func(ctx context.Context, path string, body any, opts ...api.CallOption) (*api.Response, error)

// write sends a mutating request. Offline bodies are collections, not the
// single record a write returns, so they are reported as not applied.
func write[T any](ctx context.Context, send sendFunc, path string, body any) (*T, bool, error) {
	resp, err := send(ctx, path, body)
	if err != nil {
		return nil, false, err
	}
	if resp.Offline() {
		return nil, false, nil
	}
	var out T
	if err := resp.Decode(&out); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}
