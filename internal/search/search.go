// Package search answers city prefix queries against the published index.
package search

import (
	"citysuggest/internal/cache"
	"citysuggest/internal/metrics"
	"citysuggest/internal/models"
	"citysuggest/internal/qgram"
	"citysuggest/internal/validation"
)

// Service turns raw search terms into ranked suggestions.
type Service struct {
	holder    *qgram.Holder
	cache     *cache.SuggestionCache
	limit     int
	minLength int
}

// NewService creates a search service. cache may be nil.
func NewService(holder *qgram.Holder, c *cache.SuggestionCache, limit, minLength int) *Service {
	return &Service{
		holder:    holder,
		cache:     c,
		limit:     limit,
		minLength: minLength,
	}
}

// Result is the answer to one query.
type Result struct {
	Term        string
	Suggestions []models.Suggestion
	Peds        int // computed when the answer was built, also on cache hits
	Cached      bool
}

// Suggest normalizes raw and returns up to the configured number of
// suggestions, best first. Terms that are too short or too long yield an
// empty result. Returns qgram.ErrNotLoaded before the first index is
// published.
func (s *Service) Suggest(raw string) (Result, error) {
	term := validation.NormalizeTerm(raw)
	res := Result{Term: term, Suggestions: []models.Suggestion{}}

	idx, err := s.holder.Load()
	if err != nil {
		return res, err
	}

	if !validation.ValidateTerm(term, s.minLength) {
		return res, nil
	}

	version := idx.Version()
	if s.cache != nil {
		if cached, ok := s.cache.Get(version, term, s.limit); ok {
			res.Suggestions = cached.Suggestions
			res.Peds = cached.Peds
			res.Cached = true
			metrics.ObserveSuggest(true, 0)
			return res, nil
		}
	}

	matches, peds := idx.FindMatches(term, qgram.Delta(term), s.limit)
	for _, m := range matches {
		name := idx.Name(m.ID)
		res.Suggestions = append(res.Suggestions, models.Suggestion{
			Label:  name,
			Value:  name,
			Rating: m.Score,
		})
	}
	res.Peds = peds
	metrics.ObserveSuggest(false, peds)

	if s.cache != nil {
		s.cache.Set(version, term, s.limit, cache.Entry{Suggestions: res.Suggestions, Peds: peds})
	}
	return res, nil
}
