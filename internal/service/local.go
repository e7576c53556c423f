package service

import (
	"context"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/invest"
	"github.com/agrisense/advisor-cli/internal/market"
	"github.com/agrisense/advisor-cli/internal/refdata"
)

// Local is the in-process Advisor over the reference data store. All
// operations are synchronous, stateless and non-blocking; the contexts
// exist only to satisfy the capability shape shared with Remote.
type Local struct {
	store    *refdata.Store
	engine   *engine.Engine
	analyzer *invest.Analyzer
	board    *market.Board
}

// NewLocal wires a Local advisor over the given store. marketSeed is
// passed through to the price board (zero means time-seeded).
func NewLocal(store *refdata.Store, marketSeed uint64) *Local {
	return &Local{
		store:    store,
		engine:   engine.New(store),
		analyzer: invest.New(store),
		board:    market.New(store, marketSeed),
	}
}

// Recommend scores the sample in-process. It never fails.
func (l *Local) Recommend(_ context.Context, sample engine.Sample) (engine.Recommendation, error) {
	return l.engine.Recommend(sample), nil
}

// Analyze runs the investment analyzer.
func (l *Local) Analyze(_ context.Context, cropID string, areaHectares float64) (*invest.Analysis, error) {
	return l.analyzer.Analyze(cropID, areaHectares)
}

// Prices returns the simulated market quotes.
func (l *Local) Prices(_ context.Context) ([]market.Quote, error) {
	return l.board.Quotes(), nil
}

// CropInfo returns the detail view for one crop.
func (l *Local) CropInfo(_ context.Context, cropID string) (*CropInfo, error) {
	p, ok := l.store.Crop(cropID)
	if !ok {
		return nil, ErrCropNotFound
	}
	return cropInfoFromProfile(p), nil
}

// Climate returns the district climate view.
func (l *Local) Climate(_ context.Context, district string) (*Climate, error) {
	d, ok := l.store.District(district)
	if !ok {
		return nil, ErrDistrictNotFound
	}
	return &Climate{
		District:           d.Name,
		AverageTemperature: d.AverageTemperature,
		AverageRainfall:    d.AverageRainfall,
		AverageHumidity:    d.AverageHumidity,
		SuitableCrops:      l.store.CropsForDistrict(d.Name),
	}, nil
}

// Districts lists all district names.
func (l *Local) Districts(_ context.Context) ([]string, error) {
	return l.store.DistrictNames(), nil
}
