// Package service defines the advisory capability consumed by the CLI
// and the HTTP layer, with interchangeable in-process and remote-backed
// implementations.
package service

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/invest"
	"github.com/agrisense/advisor-cli/internal/market"
	"github.com/agrisense/advisor-cli/internal/refdata"
)

// Not-found conditions surfaced by lookups. These are expected outcomes
// rendered by callers, never crashes.
var (
	ErrCropNotFound     = eris.New("service: crop not found")
	ErrDistrictNotFound = eris.New("service: district not found")
)

// CropInfo is the detail view of one crop profile. Field names match the
// external JSON contract.
type CropInfo struct {
	Crop                 string   `json:"crop"`
	NameEN               string   `json:"name_en"`
	NameHI               string   `json:"name_hi"`
	Season               string   `json:"season"`
	WaterRequirement     string   `json:"water_requirement"`
	InvestmentPerHa      float64  `json:"investment_per_ha"`
	ExpectedRevenuePerHa float64  `json:"expected_revenue_per_ha"`
	ExpectedProfitPerHa  float64  `json:"expected_profit_per_ha"`
	CurrentMarketPrice   float64  `json:"current_market_price"`
	SuitableDistricts    []string `json:"suitable_districts"`
}

// Climate is the detail view of one district profile, including the crops
// whose profiles list the district as suitable.
type Climate struct {
	District           string   `json:"district"`
	AverageTemperature float64  `json:"average_temperature"`
	AverageRainfall    float64  `json:"average_rainfall"`
	AverageHumidity    float64  `json:"average_humidity"`
	SuitableCrops      []string `json:"suitable_crops"`
}

// Advisor is the advisory capability. Implementations must return
// identically shaped results so callers cannot tell a remote backend from
// the in-process engine.
type Advisor interface {
	Recommend(ctx context.Context, sample engine.Sample) (engine.Recommendation, error)
	Analyze(ctx context.Context, cropID string, areaHectares float64) (*invest.Analysis, error)
	Prices(ctx context.Context) ([]market.Quote, error)
	CropInfo(ctx context.Context, cropID string) (*CropInfo, error)
	Climate(ctx context.Context, district string) (*Climate, error)
	Districts(ctx context.Context) ([]string, error)
}

// cropInfoFromProfile maps a stored profile to its detail view.
func cropInfoFromProfile(p refdata.CropProfile) *CropInfo {
	return &CropInfo{
		Crop:                 p.ID,
		NameEN:               p.NameEN,
		NameHI:               p.NameHI,
		Season:               p.Season,
		WaterRequirement:     p.WaterRequirement,
		InvestmentPerHa:      p.InvestmentPerHa,
		ExpectedRevenuePerHa: p.ExpectedRevenuePerHa,
		ExpectedProfitPerHa:  p.ExpectedProfitPerHa,
		CurrentMarketPrice:   p.CurrentMarketPrice,
		SuitableDistricts:    p.SuitableDistricts,
	}
}
