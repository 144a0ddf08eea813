package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citysuggest/internal/cache"
	"citysuggest/internal/qgram"
	"citysuggest/internal/testutil"
)

func newTestHolder(t *testing.T) *qgram.Holder {
	return testutil.TestHolder(t, "")
}

func TestSuggest(t *testing.T) {
	svc := NewService(newTestHolder(t), nil, 10, 1)

	res, err := svc.Suggest("Frei")
	require.NoError(t, err)

	assert.Equal(t, "frei", res.Term)
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, "Freiburg", res.Suggestions[0].Label)
	assert.Equal(t, "Freiburg", res.Suggestions[0].Value)
	assert.Equal(t, "Freiberg", res.Suggestions[1].Label)
	assert.Less(t, res.Suggestions[0].Rating, res.Suggestions[1].Rating)
	assert.Equal(t, 3, res.Peds)
	assert.False(t, res.Cached)
}

func TestSuggestDecomposedInput(t *testing.T) {
	svc := NewService(newTestHolder(t), nil, 10, 1)

	res, err := svc.Suggest("Zür")
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Zürich", res.Suggestions[0].Label)
}

func TestSuggestLimit(t *testing.T) {
	svc := NewService(newTestHolder(t), nil, 1, 1)

	res, err := svc.Suggest("frei")
	require.NoError(t, err)
	assert.Len(t, res.Suggestions, 1)
}

func TestSuggestRejectedTerms(t *testing.T) {
	svc := NewService(newTestHolder(t), nil, 10, 2)

	for _, raw := range []string{"", "f", "!!", strings.Repeat("a", 101)} {
		res, err := svc.Suggest(raw)
		require.NoError(t, err)
		assert.NotNil(t, res.Suggestions)
		assert.Empty(t, res.Suggestions, raw)
	}
}

func TestSuggestNotLoaded(t *testing.T) {
	svc := NewService(qgram.NewHolder(nil), nil, 10, 1)

	_, err := svc.Suggest("frei")
	assert.ErrorIs(t, err, qgram.ErrNotLoaded)
}

func TestSuggestUsesCache(t *testing.T) {
	store, _ := testutil.TestRedis(t)
	c := cache.New(store, time.Minute)

	svc := NewService(newTestHolder(t), c, 10, 1)

	first, err := svc.Suggest("ber")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Suggest("BER")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Suggestions, second.Suggestions)
	assert.Equal(t, first.Peds, second.Peds)
}

func TestSuggestCacheFollowsPublishedIndex(t *testing.T) {
	store, _ := testutil.TestRedis(t)
	holder := testutil.TestHolder(t, "Berlin\tGermany\n")

	svc := NewService(holder, cache.New(store, time.Minute), 10, 1)
	res, err := svc.Suggest("ber")
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Berlin", res.Suggestions[0].Label)

	idx := qgram.New(qgram.DefaultQ)
	_, err = idx.Load(strings.NewReader("Bern\tSwitzerland\n"))
	require.NoError(t, err)
	holder.Swap(idx)

	res, err = svc.Suggest("ber")
	require.NoError(t, err)
	assert.False(t, res.Cached)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Bern", res.Suggestions[0].Label)
}

func TestSuggestRestartWithOtherCitiesOnSharedRedis(t *testing.T) {
	store, _ := testutil.TestRedis(t)

	before := NewService(testutil.TestHolder(t, "Berlin\tGermany\n"), cache.New(store, time.Minute), 10, 1)
	_, err := before.Suggest("ber")
	require.NoError(t, err)

	after := NewService(testutil.TestHolder(t, "Bern\tSwitzerland\n"), cache.New(store, time.Minute), 10, 1)
	res, err := after.Suggest("ber")
	require.NoError(t, err)

	assert.False(t, res.Cached)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Bern", res.Suggestions[0].Label)
}
