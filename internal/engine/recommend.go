// Package engine implements the offline crop recommendation engine: a
// deterministic additive scoring of every known crop against a soil and
// weather sample, plus the derived yield, sustainability and advisory
// outputs.
package engine

import (
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agrisense/advisor-cli/internal/refdata"
)

// Recommendation is the engine output for one sample. Field names match
// the external JSON contract.
type Recommendation struct {
	Crop                string   `json:"crop"`
	PredictedYieldKgHa  int      `json:"predicted_yield_kg_per_ha"`
	SustainabilityScore float64  `json:"sustainability_score"`
	Confidence          float64  `json:"confidence"`
	Recommendations     []string `json:"recommendations"`
}

// Confidence bounds: the score-derived confidence is a heuristic, pinned
// away from both certainty and uselessness.
const (
	minConfidence = 0.60
	maxConfidence = 0.95
)

// Yield scaling bounds around the per-crop base constant.
const (
	yieldScaleFloor = 0.7
	yieldScaleCeil  = 1.3
)

const defaultBaseYield = 2000

// Engine scores samples against the reference data store.
type Engine struct {
	store   *refdata.Store
	printer *message.Printer
}

// New creates an Engine over the given store.
func New(store *refdata.Store) *Engine {
	return &Engine{
		store:   store,
		printer: message.NewPrinter(language.English),
	}
}

// Recommend scores every known crop against the sample and returns the
// recommendation for the winner. It never fails: malformed inputs have
// already been coerced to zero, ties resolve to the first crop in the
// store's authored order, and an all-zero scoreboard falls back to the
// store's low-water default crop.
func (e *Engine) Recommend(sample Sample) Recommendation {
	s := sample.Normalized()

	var bestID string
	bestScore := 0
	for _, id := range e.store.CropIDs() {
		rules, ok := cropRules[id]
		if !ok {
			continue
		}
		if sc := rules.score(s); sc > bestScore {
			bestID, bestScore = id, sc
		}
	}
	if bestID == "" {
		bestID = e.store.DefaultCrop()
	}

	rec := Recommendation{
		Crop:                bestID,
		PredictedYieldKgHa:  e.predictYield(bestID, bestScore),
		SustainabilityScore: sustainability(bestID, s),
		Confidence:          clamp(float64(bestScore)/100, minConfidence, maxConfidence),
		Recommendations:     e.advice(bestID, s),
	}

	zap.L().Debug("engine: recommendation",
		zap.String("crop", rec.Crop),
		zap.Int("score", bestScore),
		zap.Float64("confidence", rec.Confidence),
	)

	return rec
}

// Score returns the additive score of one crop for a sample. Exposed for
// callers that want the full scoreboard (and for tests).
func (e *Engine) Score(cropID string, sample Sample) int {
	rules, ok := cropRules[cropID]
	if !ok {
		return 0
	}
	return rules.score(sample.Normalized())
}

func (e *Engine) predictYield(cropID string, score int) int {
	base, ok := baseYield[cropID]
	if !ok {
		base = defaultBaseYield
	}
	scale := clamp(float64(score)/80, yieldScaleFloor, yieldScaleCeil)
	return int(math.Round(base * scale))
}

// sustainability rewards low water and fertilizer demand, a workable pH
// and nitrogen-fixing crops, on a 0-10 scale with one decimal.
func sustainability(cropID string, s Sample) float64 {
	score := 5.0
	if s.Rainfall < 200 {
		score += 1.5
	}
	if s.N < 100 {
		score += 1.0
	}
	if s.PH >= 6.0 && s.PH <= 7.5 {
		score += 1.5
	}
	if nitrogenFixing[cropID] {
		score += 1.0
	}
	score = clamp(score, 0, 10)
	return math.Round(score*10) / 10
}

// advice builds the ordered advisory lines: the four profile facts first,
// then condition-specific tips (pH, then nitrogen, then phosphorus) only
// when triggered.
func (e *Engine) advice(cropID string, s Sample) []string {
	lines := make([]string, 0, 7)

	if profile, ok := e.store.Crop(cropID); ok {
		lines = append(lines,
			"Best season for "+cropID+": "+profile.Season,
			"Water requirement: "+profile.WaterRequirement,
			// The printer inserts grouping separators: ₹45,000.
			e.printer.Sprintf("Expected investment: ₹%d per hectare", int64(profile.InvestmentPerHa)),
			"Suitable districts: "+strings.Join(profile.SuitableDistricts, ", "),
		)
	}

	if s.PH < 6.0 {
		lines = append(lines, "Consider adding lime to increase soil pH")
	} else if s.PH > 7.5 {
		lines = append(lines, "Consider adding organic matter to reduce soil pH")
	}
	if s.N < 40 {
		lines = append(lines, "Consider nitrogen-rich fertilizers or organic compost")
	}
	if s.P < 30 {
		lines = append(lines, "Consider phosphorus-rich fertilizers or bone meal")
	}

	return lines
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
