package jobs

import (
	"context"
	"log"
	"time"

	"citysuggest/internal/qgram"
)

// IndexRefresher rebuilds the city index from its source and publishes it.
type IndexRefresher struct {
	source   qgram.Source
	holder   *qgram.Holder
	q        int
	interval time.Duration
	onSwap   func(*qgram.Index)
}

// NewIndexRefresher creates a new index refresher.
func NewIndexRefresher(source qgram.Source, holder *qgram.Holder, q int, interval time.Duration) *IndexRefresher {
	return &IndexRefresher{
		source:   source,
		holder:   holder,
		q:        q,
		interval: interval,
	}
}

// OnSwap registers a callback invoked after each successful publish.
func (r *IndexRefresher) OnSwap(fn func(*qgram.Index)) {
	r.onSwap = fn
}

// Refresh builds one index and publishes it. On failure the current index
// stays in place.
func (r *IndexRefresher) Refresh(ctx context.Context) error {
	start := time.Now()
	idx, err := r.source.LoadIndex(ctx, r.q)
	if err != nil {
		return err
	}

	r.holder.Swap(idx)
	log.Printf("City index loaded: %d records in %v", idx.Len(), time.Since(start).Round(time.Millisecond))

	if r.onSwap != nil {
		r.onSwap(idx)
	}
	return nil
}

// Start runs the reload loop until ctx is cancelled. It does not perform
// an initial load; call Refresh for that.
func (r *IndexRefresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	log.Printf("Index refresher started (interval: %v)", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Index refresher stopped")
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				log.Printf("Index refresher: failed to reload: %v", err)
			}
		}
	}
}
