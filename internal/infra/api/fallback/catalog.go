// Package fallback holds the canned records served when the backend is unreachable.
//
// The catalog is built once and never mutated, so it is safe to share between
// goroutines without synchronization.
package fallback

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category buckets endpoint paths for fallback lookup.
type Category string

const (
	CategoryNews    Category = "news"
	CategoryLogs    Category = "logs"
	CategorySources Category = "sources"
	CategoryEvents  Category = "events"
	CategoryDefault Category = "default"
)

// emptyCollection is served for paths with no fallback data.
var emptyCollection = []byte("[]")

// Catalog maps endpoint categories to pre-encoded JSON collections.
type Catalog struct {
	bodies map[Category][]byte
	counts map[Category]int
}

// New encodes the given record sets into an immutable catalog. Each value must
// marshal to a JSON array.
func New(records map[Category]any) (*Catalog, error) {
	c := &Catalog{
		bodies: make(map[Category][]byte, len(records)),
		counts: make(map[Category]int, len(records)),
	}
	for category, set := range records {
		data, err := json.Marshal(set)
		if err != nil {
			return nil, fmt.Errorf("encode %s fallback: %w", category, err)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%s fallback is not a collection: %w", category, err)
		}
		if items == nil {
			data = emptyCollection
		}
		c.bodies[category] = data
		c.counts[category] = len(items)
	}
	return c, nil
}

// Default returns the catalog with the built-in dashboard fixtures.
func Default() *Catalog {
	c, err := New(map[Category]any{
		CategoryNews:    newsFixtures,
		CategoryLogs:    scrapeLogFixtures,
		CategorySources: sourceFixtures,
		CategoryEvents:  eventFixtures,
	})
	if err != nil {
		panic(err)
	}
	return c
}

// CategoryFor buckets a request path by its first segment. Query strings are
// ignored and unknown paths fall into CategoryDefault.
func CategoryFor(path string) Category {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	segment = strings.ToLower(segment)

	switch {
	case strings.HasPrefix(segment, "news"):
		return CategoryNews
	case segment == "logs":
		return CategoryLogs
	case segment == "data-sources", segment == "sources":
		return CategorySources
	case segment == "events":
		return CategoryEvents
	default:
		return CategoryDefault
	}
}

// Lookup returns the fallback JSON array for a path. Unmatched paths yield an
// empty array, never an error. The returned slice is a copy.
func (c *Catalog) Lookup(path string) []byte {
	body, ok := c.bodies[CategoryFor(path)]
	if !ok {
		body = emptyCollection
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out
}

// Len reports how many records a category holds.
func (c *Catalog) Len(category Category) int {
	return c.counts[category]
}
