package jobs

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citysuggest/internal/qgram"
)

type stubSource struct {
	lines string
	err   error
	loads atomic.Int32
}

func (s *stubSource) LoadIndex(_ context.Context, q int) (*qgram.Index, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	idx := qgram.New(q)
	if _, err := idx.Load(strings.NewReader(s.lines)); err != nil {
		return nil, err
	}
	return idx, nil
}

func TestRefreshPublishesIndex(t *testing.T) {
	source := &stubSource{lines: "Berlin\nBonn\n"}
	holder := qgram.NewHolder(nil)
	r := NewIndexRefresher(source, holder, qgram.DefaultQ, 0)

	var swapped *qgram.Index
	r.OnSwap(func(idx *qgram.Index) { swapped = idx })

	require.NoError(t, r.Refresh(context.Background()))

	idx, err := holder.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Same(t, idx, swapped)
}

func TestRefreshFailureKeepsCurrentIndex(t *testing.T) {
	current := qgram.New(qgram.DefaultQ)
	current.Add("Lyon")
	holder := qgram.NewHolder(current)

	loadErr := errors.New("source down")
	r := NewIndexRefresher(&stubSource{err: loadErr}, holder, qgram.DefaultQ, 0)

	assert.ErrorIs(t, r.Refresh(context.Background()), loadErr)

	idx, err := holder.Load()
	require.NoError(t, err)
	assert.Same(t, current, idx)
}

func TestStartWithoutIntervalReturns(t *testing.T) {
	source := &stubSource{lines: "Berlin\n"}
	r := NewIndexRefresher(source, qgram.NewHolder(nil), qgram.DefaultQ, 0)

	r.Start(context.Background())
	assert.Zero(t, source.loads.Load())
}

func TestStartReloadsUntilCancelled(t *testing.T) {
	source := &stubSource{lines: "Berlin\n"}
	holder := qgram.NewHolder(nil)
	r := NewIndexRefresher(source, holder, qgram.DefaultQ, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return source.loads.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
	assert.True(t, holder.Ready())
}
