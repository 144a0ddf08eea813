package qgram

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrEmptySource is returned when a source holds no records.
var ErrEmptySource = errors.New("city source is empty")

// Source builds a fresh index from stored city records.
type Source interface {
	LoadIndex(ctx context.Context, q int) (*Index, error)
}

// FileSource reads city records from a TSV file, one per line.
type FileSource struct {
	Path string
}

// LoadIndex reads the file and indexes every line.
func (s FileSource) LoadIndex(ctx context.Context, q int) (*Index, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open city file: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := New(q)
	if _, err := idx.Load(f); err != nil {
		return nil, err
	}
	if idx.Len() == 0 {
		return nil, ErrEmptySource
	}
	return idx, nil
}
