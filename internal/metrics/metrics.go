package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"citysuggest/internal/models"
)

var (
	citySelectionDesc = prometheus.NewDesc(
		"citysuggest_city_selections_total",
		"Total autocomplete selections by city and outcome",
		[]string{"city", "outcome"},
		nil,
	)

	suggestRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "citysuggest_suggest_requests_total",
		Help: "Suggestion requests by cache result",
	}, []string{"cache"})

	pedComputations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "citysuggest_ped_computations",
		Help:    "Prefix edit distance computations per query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	indexRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "citysuggest_index_records",
		Help: "Number of records in the published city index",
	})
)

// OtherCity is the city label for selections that match no indexed city.
const OtherCity = "(other)"

// SelectionStore persists selection counts.
type SelectionStore interface {
	IncrementSelection(ctx context.Context, name, outcome string) error
	GetAllSelections(ctx context.Context) ([]models.SelectionCount, error)
}

// SelectionCollector is a custom Prometheus collector that reads selection
// counts from the database on each scrape.
type SelectionCollector struct {
	store SelectionStore
}

// Describe sends the metric descriptor to the channel.
func (c *SelectionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- citySelectionDesc
}

// Collect queries the database for all selection counts and emits them as counters.
func (c *SelectionCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.GetAllSelections(context.Background())
	if err != nil {
		slog.Error("failed to collect city selection metrics", "error", err)
		return
	}
	for _, s := range counts {
		ch <- prometheus.MustNewConstMetric(
			citySelectionDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Name,
			s.Outcome,
		)
	}
}

// Recorder provides async selection recording.
type Recorder struct {
	store SelectionStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	registerOnce sync.Once
	recorderOnce sync.Once
)

// Register adds the service collectors to reg. Safe to call more than once.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(suggestRequests, pedComputations, indexRecords)
	})
}

// Init registers the selection collector and initializes the recorder.
// Must be called once at startup, and only when a database is configured.
func Init(reg prometheus.Registerer, store SelectionStore) {
	recorderOnce.Do(func() {
		recorder = &Recorder{store: store}
		reg.MustRegister(&SelectionCollector{store: store})
	})
}

// RecordSelection asynchronously records a selection outcome.
func RecordSelection(name, outcome string) {
	if recorder == nil {
		return
	}
	recorder.wg.Add(1)
	go func() {
		defer recorder.wg.Done()
		if err := recorder.store.IncrementSelection(context.Background(), name, outcome); err != nil {
			slog.Error("failed to record city selection", "city", name, "outcome", outcome, "error", err)
		}
	}()
}

// Flush waits for in-flight selection writes.
func Flush() {
	if recorder != nil {
		recorder.wg.Wait()
	}
}

// ObserveSuggest records one answered suggestion request.
func ObserveSuggest(cacheHit bool, peds int) {
	if cacheHit {
		suggestRequests.WithLabelValues("hit").Inc()
		return
	}
	suggestRequests.WithLabelValues("miss").Inc()
	pedComputations.Observe(float64(peds))
}

// SetIndexRecords publishes the size of the current index.
func SetIndexRecords(n int) {
	indexRecords.Set(float64(n))
}
