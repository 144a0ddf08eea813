// Package cache keeps recent get_cities answers in an external key/value
// store so repeated keystrokes skip the index.
package cache

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/storage/redis/v3"

	"citysuggest/internal/models"
)

// Store is the subset of fiber.Storage the cache needs.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// NewRedisStore connects to redis at url.
func NewRedisStore(url string) *redis.Storage {
	return redis.New(redis.Config{
		URL: url,
	})
}

// Entry is one cached answer.
type Entry struct {
	Suggestions []models.Suggestion `json:"suggestions"`
	Peds        int                 `json:"peds"`
}

// SuggestionCache caches answers per index version, term and limit. The
// version comes from the index that produced the answer, so processes
// sharing a store never read entries computed from different city data.
type SuggestionCache struct {
	store Store
	ttl   time.Duration
}

// New creates a suggestion cache on top of store.
func New(store Store, ttl time.Duration) *SuggestionCache {
	return &SuggestionCache{store: store, ttl: ttl}
}

func key(version, term string, limit int) string {
	return "suggest:" + version + ":" + strconv.Itoa(limit) + ":" + term
}

// Get returns the cached answer for term. Store errors count as misses.
func (c *SuggestionCache) Get(version, term string, limit int) (Entry, bool) {
	data, err := c.store.Get(key(version, term, limit))
	if err != nil {
		slog.Error("suggestion cache read failed", "term", term, "error", err)
		return Entry{}, false
	}
	if data == nil {
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		slog.Error("suggestion cache entry corrupt", "term", term, "error", err)
		return Entry{}, false
	}
	if entry.Suggestions == nil {
		entry.Suggestions = []models.Suggestion{}
	}
	return entry, true
}

// Set stores the answer for term.
func (c *SuggestionCache) Set(version, term string, limit int, entry Entry) {
	if entry.Suggestions == nil {
		entry.Suggestions = []models.Suggestion{}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("failed to encode suggestions", "term", term, "error", err)
		return
	}
	if err := c.store.Set(key(version, term, limit), data, c.ttl); err != nil {
		slog.Error("suggestion cache write failed", "term", term, "error", err)
	}
}
