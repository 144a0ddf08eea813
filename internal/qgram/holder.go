package qgram

import (
	"errors"
	"sync/atomic"
)

// ErrNotLoaded is returned when a search runs before any index was published.
var ErrNotLoaded = errors.New("city index not loaded")

// Holder publishes a complete index to concurrent readers. A published
// index is never mutated; reloads build a fresh index and swap it in.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder creates a holder, optionally with an initial index.
func NewHolder(idx *Index) *Holder {
	h := &Holder{}
	if idx != nil {
		h.current.Store(idx)
	}
	return h
}

// Load returns the current index or ErrNotLoaded.
func (h *Holder) Load() (*Index, error) {
	idx := h.current.Load()
	if idx == nil {
		return nil, ErrNotLoaded
	}
	return idx, nil
}

// Swap publishes idx and returns the previous index, if any.
func (h *Holder) Swap(idx *Index) *Index {
	return h.current.Swap(idx)
}

// Ready reports whether an index has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
