// Package testutil provides test utilities and helpers.
package testutil

import (
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/storage/redis/v3"

	"citysuggest/internal/cache"
	"citysuggest/internal/qgram"
)

// Cities is a small city list shared by handler and service tests.
const Cities = "Frankfurt\tGermany\nFreiburg\tGermany\nBerlin\tGermany\nFreiberg\tGermany\nParis\tFrance\nZürich\tSwitzerland\n"

// TestHolder builds an index from lines (Cities when empty) and publishes it.
func TestHolder(t *testing.T, lines string) *qgram.Holder {
	t.Helper()

	if lines == "" {
		lines = Cities
	}

	idx := qgram.New(qgram.DefaultQ)
	if _, err := idx.Load(strings.NewReader(lines)); err != nil {
		t.Fatalf("failed to build test index: %v", err)
	}
	return qgram.NewHolder(idx)
}

// TestRedis starts an in-process redis server and returns a storage
// connected to it. Both are closed when the test ends.
func TestRedis(t *testing.T) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := cache.NewRedisStore("redis://" + mr.Addr())
	t.Cleanup(func() {
		store.Close()
	})
	return store, mr
}
