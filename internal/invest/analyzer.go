// Package invest derives the investment and profitability analysis for a
// crop grown over a given area. All figures scale linearly from the
// authored per-hectare profile data.
package invest

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/agrisense/advisor-cli/internal/refdata"
)

// Sentinel errors. ErrUnknownCrop is a not-found condition callers render
// without treating it as a failure; ErrInvalidArea is the one strict
// validation in the system, because area multiplies every financial
// figure shown to the farmer.
var (
	ErrUnknownCrop = eris.New("invest: unknown crop")
	ErrInvalidArea = eris.New("invest: area must be a positive number of hectares")
)

// Analysis is the financial summary for one crop and area. Field names
// match the external JSON contract.
type Analysis struct {
	Crop             string             `json:"crop"`
	AreaHectares     float64            `json:"area_hectares"`
	Season           string             `json:"season"`
	TotalInvestment  float64            `json:"total_investment"`
	ExpectedRevenue  float64            `json:"expected_revenue"`
	ExpectedProfit   float64            `json:"expected_profit"`
	ROIPercentage    float64            `json:"roi_percentage"`
	CostBreakdown    map[string]float64 `json:"cost_breakdown"`
	ExpectedYieldKg  float64            `json:"expected_yield_kg"`
	BreakEvenPriceKg float64            `json:"break_even_price_per_kg"`
	RiskLevel        string             `json:"risk_level"`
}

// costSplit is the fixed allocation of total investment across input
// categories. The six shares sum to 100%.
var costSplit = []struct {
	category string
	share    float64
}{
	{"seeds", 0.15},
	{"fertilizers", 0.25},
	{"pesticides", 0.10},
	{"irrigation", 0.20},
	{"labor", 0.20},
	{"machinery", 0.10},
}

// Risk tier thresholds on ROI percentage.
const (
	lowRiskROI    = 40
	mediumRiskROI = 20
)

// Analyzer computes investment analyses from the reference data store.
type Analyzer struct {
	store *refdata.Store
}

// New creates an Analyzer over the given store.
func New(store *refdata.Store) *Analyzer {
	return &Analyzer{store: store}
}

// Analyze returns the financial summary for growing cropID over
// areaHectares. It fails with ErrUnknownCrop for identifiers not in the
// store and ErrInvalidArea for non-positive or non-numeric areas.
func (a *Analyzer) Analyze(cropID string, areaHectares float64) (*Analysis, error) {
	if math.IsNaN(areaHectares) || math.IsInf(areaHectares, 0) || areaHectares <= 0 {
		return nil, ErrInvalidArea
	}

	profile, ok := a.store.Crop(cropID)
	if !ok {
		return nil, ErrUnknownCrop
	}

	totalInvestment := profile.InvestmentPerHa * areaHectares
	expectedRevenue := profile.ExpectedRevenuePerHa * areaHectares
	expectedProfit := profile.ExpectedProfitPerHa * areaHectares

	// Load rejects profiles with non-positive investment, revenue or
	// market price, so these divisions are safe.
	roi := expectedProfit / totalInvestment * 100
	expectedYield := math.Round(expectedRevenue / profile.CurrentMarketPrice)

	// A tiny area can round the yield down to zero; fall back to the
	// unrounded yield so the break-even price stays finite.
	breakEven := totalInvestment / expectedYield
	if expectedYield == 0 {
		breakEven = totalInvestment * profile.CurrentMarketPrice / expectedRevenue
	}

	breakdown := make(map[string]float64, len(costSplit))
	for _, c := range costSplit {
		// Each category rounds independently; the sum may drift from the
		// total by a few rupees and that drift is accepted, not corrected.
		breakdown[c.category] = math.Round(totalInvestment * c.share)
	}

	analysis := &Analysis{
		Crop:             profile.ID,
		AreaHectares:     areaHectares,
		Season:           profile.Season,
		TotalInvestment:  totalInvestment,
		ExpectedRevenue:  expectedRevenue,
		ExpectedProfit:   expectedProfit,
		ROIPercentage:    roi,
		CostBreakdown:    breakdown,
		ExpectedYieldKg:  expectedYield,
		BreakEvenPriceKg: breakEven,
		RiskLevel:        riskLevel(roi),
	}

	zap.L().Debug("invest: analysis",
		zap.String("crop", analysis.Crop),
		zap.Float64("area_hectares", areaHectares),
		zap.Float64("roi_percentage", roi),
		zap.String("risk_level", analysis.RiskLevel),
	)

	return analysis, nil
}

func riskLevel(roi float64) string {
	switch {
	case roi > lowRiskROI:
		return "Low"
	case roi > mediumRiskROI:
		return "Medium"
	default:
		return "High"
	}
}
