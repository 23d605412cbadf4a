package fallback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietddude/newscatcher/internal/core/domain"
)

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		path   string
		expect Category
	}{
		{"/news", CategoryNews},
		{"/news/search?location=Huntington", CategoryNews},
		{"/newsapi/Huntington", CategoryNews},
		{"news", CategoryNews},
		{"/logs", CategoryLogs},
		{"/logs?limit=20", CategoryLogs},
		{"/data-sources", CategorySources},
		{"/sources/3/toggle", CategorySources},
		{"/events", CategoryEvents},
		{"/unknown-endpoint", CategoryDefault},
		{"/", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, CategoryFor(tt.path), "path %q", tt.path)
	}
}

func TestDefaultCatalog_News(t *testing.T) {
	c := Default()

	var items []domain.NewsItem
	require.NoError(t, json.Unmarshal(c.Lookup("/news"), &items))
	require.Len(t, items, 5)
	assert.Equal(t, 5, c.Len(CategoryNews))
	for _, item := range items {
		assert.NotEmpty(t, item.Title)
		assert.NotZero(t, item.Latitude)
		assert.NotZero(t, item.Longitude)
	}
}

func TestLookup_UnmatchedPathIsEmptyCollection(t *testing.T) {
	c := Default()

	body := c.Lookup("/unknown-endpoint")
	assert.JSONEq(t, "[]", string(body))
	assert.Equal(t, 0, c.Len(CategoryDefault))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	c := Default()

	first := c.Lookup("/logs")
	first[0] = 'x'
	assert.Equal(t, byte('['), c.Lookup("/logs")[0])
}

func TestNew_RejectsNonCollection(t *testing.T) {
	_, err := New(map[Category]any{CategoryNews: map[string]string{"a": "b"}})
	require.Error(t, err)
}

func TestNew_NilSliceIsEmpty(t *testing.T) {
	var none []domain.Event
	c, err := New(map[Category]any{CategoryEvents: none})
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(c.Lookup("/events")))
}
