package handlers

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citysuggest/internal/binder"
	"citysuggest/internal/config"
	"citysuggest/internal/metrics"
	"citysuggest/internal/models"
	"citysuggest/internal/testutil"
)

type selectionRecorder struct {
	mu     sync.Mutex
	counts map[[2]string]int64
}

func (r *selectionRecorder) IncrementSelection(_ context.Context, name, outcome string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[[2]string{name, outcome}]++
	return nil
}

func (r *selectionRecorder) GetAllSelections(context.Context) ([]models.SelectionCount, error) {
	return nil, nil
}

func (r *selectionRecorder) count(name, outcome string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[[2]string{name, outcome}]
}

var testSelections = func() *selectionRecorder {
	rec := &selectionRecorder{counts: map[[2]string]int64{}}
	metrics.Init(prometheus.NewRegistry(), rec)
	return rec
}()

func TestSelectCountsOnlyIndexedNames(t *testing.T) {
	cfg := &config.Config{MapsURL: binder.DefaultMapsPrefix}
	h := NewSelectHandler(cfg, binder.DefaultConfig(), testutil.TestHolder(t, ""))

	app := fiber.New()
	app.Get("/select", h.Select)

	targets := []string{
		"/select?label=Paris2&input=Par",
		"/select?label=Paris&input=Pa",
		"/select?label=Atlantis&input=At",
		"/select?label=Atlantis%20Prime&input=At",
		"/select?label=&input=Lon",
	}
	for _, target := range targets {
		req, err := http.NewRequest(http.MethodGet, target, nil)
		require.NoError(t, err)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode, target)
	}
	metrics.Flush()

	assert.Equal(t, int64(2), testSelections.count("Paris", models.OutcomeSelected))
	assert.Equal(t, int64(2), testSelections.count(metrics.OtherCity, models.OutcomeSelected))
	assert.Zero(t, testSelections.count("Atlantis", models.OutcomeSelected))
	assert.Equal(t, int64(1), testSelections.count("", models.OutcomeEmpty))
}

func TestCountedName(t *testing.T) {
	h := NewSelectHandler(&config.Config{}, binder.DefaultConfig(), testutil.TestHolder(t, "Oslo\tNorway\n"))
	assert.Equal(t, "Oslo", h.countedName("Oslo"))
	assert.Equal(t, metrics.OtherCity, h.countedName("Bergen"))
	assert.Empty(t, h.countedName(""))
}
