package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/advisor-cli/internal/refdata"
)

func testBoard(t *testing.T, seed uint64) *Board {
	t.Helper()
	store, err := refdata.Load()
	require.NoError(t, err)
	b := New(store, seed)
	b.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return b
}

func TestQuotesCoverEveryCropInOrder(t *testing.T) {
	t.Parallel()
	b := testBoard(t, 42)

	quotes := b.Quotes()
	require.Len(t, quotes, 8)

	store, err := refdata.Load()
	require.NoError(t, err)
	for i, id := range store.CropIDs() {
		assert.Equal(t, id, quotes[i].Crop)
	}
}

func TestQuotesStayWithinVariationBounds(t *testing.T) {
	t.Parallel()
	b := testBoard(t, 7)

	store, err := refdata.Load()
	require.NoError(t, err)

	for range 100 {
		for _, q := range b.Quotes() {
			profile, ok := store.Crop(q.Crop)
			require.True(t, ok)

			lo := profile.CurrentMarketPrice * (1 - maxVariation)
			hi := profile.CurrentMarketPrice * (1 + maxVariation)
			// Rounding to paise can nudge a boundary value by half a unit.
			assert.GreaterOrEqual(t, q.CurrentPricePerKg, lo-0.005, q.Crop)
			assert.LessOrEqual(t, q.CurrentPricePerKg, hi+0.005, q.Crop)

			assert.Contains(t, []string{"up", "stable", "down"}, q.MarketTrend)
			assert.Equal(t, "2026-03-14T09:30:00Z", q.LastUpdated)
		}
	}
}

func TestTrendSkew(t *testing.T) {
	t.Parallel()
	b := testBoard(t, 11)

	counts := map[string]int{}
	total := 0
	for range 500 {
		for _, q := range b.Quotes() {
			counts[q.MarketTrend]++
			total++
		}
	}

	// up 30% / stable 40% / down 30%.
	assert.InDelta(t, 0.30, float64(counts["up"])/float64(total), 0.05)
	assert.InDelta(t, 0.40, float64(counts["stable"])/float64(total), 0.05)
	assert.InDelta(t, 0.30, float64(counts["down"])/float64(total), 0.05)
}

func TestQuotesDeterministicUnderFixedSeed(t *testing.T) {
	t.Parallel()

	a := testBoard(t, 99)
	b := testBoard(t, 99)
	assert.Equal(t, a.Quotes(), b.Quotes())
}
