package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"
)

func newTestStore(t *testing.T) (NewsStoreRepository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewNewsStoreRepository(dir, logger.NewNop())
	require.NoError(t, err)
	return store, dir
}

func TestNewsStore_PutGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	populated := entity.NewDayRecord("2025-03-12", []entity.Article{
		{
			Title:       "Apple unveils new chip",
			Description: "Faster and cooler",
			URL:         "https://example.com/a",
			PublishedAt: "2025-03-12T09:30:00Z",
			Source:      "Example News",
		},
	})
	empty := entity.NewDayRecord("2025-03-11", nil)
	empty.NoNews = true
	weekend := entity.NewWeekendRecord("2025-03-08")

	for _, rec := range []entity.DayRecord{populated, empty, weekend} {
		require.NoError(t, store.Put("AAPL", rec.Date, rec))
	}

	got, ok := store.Get("AAPL", "2025-03-12")
	require.True(t, ok)
	assert.Equal(t, populated, got)

	got, ok = store.Get("AAPL", "2025-03-11")
	require.True(t, ok)
	assert.Equal(t, empty, got)
	assert.Empty(t, got.Articles)

	got, ok = store.Get("AAPL", "2025-03-08")
	require.True(t, ok)
	assert.True(t, got.IsWeekend)

	_, ok = store.Get("AAPL", "2025-03-09")
	assert.False(t, ok)
}

func TestNewsStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	records := store.Load("TSLA")
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNewsStore_LoadCorruptFileFailsSoft(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.json"), []byte("{not json"), 0o644))

	records := store.Load("AAPL")
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestNewsStore_FileNamedByUppercasedSymbol(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Put("aapl", "2025-03-12", entity.NewDayRecord("2025-03-12", nil)))

	_, err := os.Stat(filepath.Join(dir, "AAPL.json"))
	assert.NoError(t, err)
}

func TestNewsStore_SaveWritesKeysDescending(t *testing.T) {
	store, dir := newTestStore(t)

	records := map[string]entity.DayRecord{
		"2025-03-10": entity.NewDayRecord("2025-03-10", nil),
		"2025-03-14": entity.NewDayRecord("2025-03-14", nil),
		"2025-03-12": entity.NewDayRecord("2025-03-12", nil),
	}
	require.NoError(t, store.Save("AAPL", records))

	data, err := os.ReadFile(filepath.Join(dir, "AAPL.json"))
	require.NoError(t, err)

	content := string(data)
	first := strings.Index(content, `"2025-03-14"`)
	second := strings.Index(content, `"2025-03-12"`)
	third := strings.Index(content, `"2025-03-10"`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestNewsStore_SaveOverwritesPreviousContent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Put("AAPL", "2025-03-10", entity.NewDayRecord("2025-03-10", nil)))
	require.NoError(t, store.Save("AAPL", map[string]entity.DayRecord{
		"2025-03-11": entity.NewDayRecord("2025-03-11", nil),
	}))

	records := store.Load("AAPL")
	assert.Len(t, records, 1)
	_, ok := records["2025-03-10"]
	assert.False(t, ok)
}

func TestNewsStore_PreservesNonASCIIContent(t *testing.T) {
	store, _ := newTestStore(t)

	rec := entity.NewDayRecord("2025-03-12", []entity.Article{
		{Title: "Überraschung für Anleger", URL: "https://example.com/u?a=1&b=2", PublishedAt: "2025-03-12T10:00:00Z"},
	})
	require.NoError(t, store.Put("AAPL", rec.Date, rec))

	got, ok := store.Get("AAPL", "2025-03-12")
	require.True(t, ok)
	assert.Equal(t, "Überraschung für Anleger", got.Articles[0].Title)
	assert.Equal(t, "https://example.com/u?a=1&b=2", got.Articles[0].URL)
}
