package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisense/advisor-cli/internal/refdata"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	store, err := refdata.Load()
	require.NoError(t, err)
	return New(store)
}

// monsoonSample satisfies every rice band: both rainfall tiers, both
// humidity tiers, the temperature and pH ranges and all three nutrient
// thresholds, for a total of 120 points.
func monsoonSample() Sample {
	return Sample{
		N: 90, P: 45, K: 45,
		Temperature: 26, Humidity: 82, PH: 6.2, Rainfall: 220,
	}
}

func TestRecommendMonsoonConditionsPickRice(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	rec := e.Recommend(monsoonSample())

	assert.Equal(t, "rice", rec.Crop)
	assert.GreaterOrEqual(t, rec.Confidence, 0.80)
	// 120 points clamps to the confidence ceiling.
	assert.Equal(t, 0.95, rec.Confidence)
	// Yield scale also clamps at the ceiling: round(3500 * 1.3).
	assert.Equal(t, 4550, rec.PredictedYieldKgHa)
	// 5.0 base + 1.0 (N below 100) + 1.5 (pH in range); rainfall 220 earns
	// no low-water bonus and rice is not nitrogen-fixing.
	assert.Equal(t, 7.5, rec.SustainabilityScore)
}

func TestRecommendScoreboard(t *testing.T) {
	t.Parallel()
	e := testEngine(t)
	s := monsoonSample()

	assert.Equal(t, 120, e.Score("rice", s))
	assert.Equal(t, 80, e.Score("sugarcane", s))
	assert.Equal(t, 70, e.Score("banana", s))
	assert.Equal(t, 65, e.Score("maize", s))
	assert.Equal(t, 55, e.Score("cotton", s))
	assert.Equal(t, 50, e.Score("chickpea", s))
	assert.Equal(t, 35, e.Score("wheat", s))
	assert.Equal(t, 25, e.Score("kidney_beans", s))
	assert.Equal(t, 0, e.Score("unknown_crop_xyz", s))
}

func TestRecommendZeroSampleFallsBackToChickpea(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	rec := e.Recommend(Sample{})

	// Every band minimum is above zero, so nothing scores and the
	// low-water default wins.
	assert.Equal(t, "chickpea", rec.Crop)
	assert.Equal(t, minConfidence, rec.Confidence)
	// round(1800 * 0.7): the yield scale floor applies.
	assert.Equal(t, 1260, rec.PredictedYieldKgHa)
	// 5.0 + 1.5 (rainfall) + 1.0 (nitrogen) + 1.0 (nitrogen-fixing crop);
	// pH 0 is outside the neutral range.
	assert.Equal(t, 8.5, rec.SustainabilityScore)
	assert.NotEmpty(t, rec.Recommendations)
}

func TestRecommendTieBreaksToFirstAuthoredCrop(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	// pH 6.5 sits in every crop's pH band and nothing else scores, so all
	// eight crops tie at 15 points.
	s := Sample{PH: 6.5}
	for _, id := range []string{"rice", "wheat", "maize", "cotton", "sugarcane", "chickpea", "kidney_beans", "banana"} {
		require.Equal(t, 15, e.Score(id, s), id)
	}

	for range 50 {
		assert.Equal(t, "rice", e.Recommend(s).Crop)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	s := Sample{N: 55, P: 62, K: 90, Temperature: 24, Humidity: 68, PH: 6.8, Rainfall: 80}
	first := e.Recommend(s)
	for range 20 {
		assert.Equal(t, first, e.Recommend(s))
	}
}

func TestRecommendAlwaysReturnsKnownCropWithinBounds(t *testing.T) {
	t.Parallel()
	store, err := refdata.Load()
	require.NoError(t, err)
	e := New(store)

	known := make(map[string]bool)
	for _, id := range store.CropIDs() {
		known[id] = true
	}

	// Sweep a coarse grid over the input space, including pathological
	// negatives.
	for _, n := range []float64{-10, 0, 30, 90, 150} {
		for _, temp := range []float64{-5, 0, 14, 23, 29, 45} {
			for _, hum := range []float64{0, 40, 66, 78, 95} {
				for _, ph := range []float64{0, 4.5, 6.2, 7.8, 14} {
					for _, rain := range []float64{0, 45, 90, 160, 400} {
						rec := e.Recommend(Sample{
							N: n, P: n, K: n,
							Temperature: temp, Humidity: hum, PH: ph, Rainfall: rain,
						})
						require.True(t, known[rec.Crop], "unknown crop %q", rec.Crop)
						require.GreaterOrEqual(t, rec.Confidence, 0.60)
						require.LessOrEqual(t, rec.Confidence, 0.95)
						require.GreaterOrEqual(t, rec.SustainabilityScore, 0.0)
						require.LessOrEqual(t, rec.SustainabilityScore, 10.0)
						require.GreaterOrEqual(t, len(rec.Recommendations), 4)
					}
				}
			}
		}
	}
}

func TestAdviceOrderAndTips(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	tests := []struct {
		name     string
		sample   Sample
		wantTips []string
	}{
		{
			name:     "no tips when conditions are fine",
			sample:   Sample{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 6.2, Rainfall: 220},
			wantTips: nil,
		},
		{
			name:   "acidic soil gets lime tip",
			sample: Sample{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 5.6, Rainfall: 220},
			wantTips: []string{
				"Consider adding lime to increase soil pH",
			},
		},
		{
			name:   "alkaline soil gets organic matter tip",
			sample: Sample{N: 90, P: 45, K: 45, Temperature: 26, Humidity: 82, PH: 7.9, Rainfall: 220},
			wantTips: []string{
				"Consider adding organic matter to reduce soil pH",
			},
		},
		{
			name:   "all tips in fixed order",
			sample: Sample{N: 10, P: 10, K: 45, Temperature: 26, Humidity: 82, PH: 5.0, Rainfall: 220},
			wantTips: []string{
				"Consider adding lime to increase soil pH",
				"Consider nitrogen-rich fertilizers or organic compost",
				"Consider phosphorus-rich fertilizers or bone meal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := e.Recommend(tt.sample)

			require.GreaterOrEqual(t, len(rec.Recommendations), 4)
			profile, ok := testStoreCrop(t, rec.Crop)
			require.True(t, ok)

			// Profile facts come first, in fixed order.
			assert.Equal(t, "Best season for "+rec.Crop+": "+profile.Season, rec.Recommendations[0])
			assert.Equal(t, "Water requirement: "+profile.WaterRequirement, rec.Recommendations[1])
			assert.Contains(t, rec.Recommendations[2], "Expected investment: ₹")
			assert.Contains(t, rec.Recommendations[2], "per hectare")
			assert.Contains(t, rec.Recommendations[3], "Suitable districts: ")

			assert.Equal(t, tt.wantTips, nilIfEmpty(rec.Recommendations[4:]))
		})
	}
}

func TestAdviceInvestmentLineUsesGroupingSeparators(t *testing.T) {
	t.Parallel()
	e := testEngine(t)

	rec := e.Recommend(monsoonSample())
	require.Equal(t, "rice", rec.Crop)
	assert.Equal(t, "Expected investment: ₹45,000 per hectare", rec.Recommendations[2])
}

func testStoreCrop(t *testing.T, id string) (refdata.CropProfile, bool) {
	t.Helper()
	store, err := refdata.Load()
	require.NoError(t, err)
	return store.Crop(id)
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
