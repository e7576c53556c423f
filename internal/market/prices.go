// Package market simulates current mandi quotes around the authored
// reference prices. The randomness here is deliberately isolated from the
// recommendation engine, which must stay deterministic.
package market

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/agrisense/advisor-cli/internal/refdata"
)

// Quote is one simulated market price. Field names match the external
// JSON contract.
type Quote struct {
	Crop              string  `json:"crop"`
	CurrentPricePerKg float64 `json:"current_price_per_kg"`
	MarketTrend       string  `json:"market_trend"`
	LastUpdated       string  `json:"last_updated"`
}

// Prices fluctuate up to this fraction around the authored price.
const maxVariation = 0.05

// Board produces simulated quotes for every known crop.
type Board struct {
	store *refdata.Store
	rng   *rand.Rand
	now   func() time.Time
}

// New creates a Board seeded from the given source. A zero seed picks a
// time-based seed.
func New(store *refdata.Store, seed uint64) *Board {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Board{
		store: store,
		rng:   rand.New(rand.NewPCG(seed, seed)),
		now:   time.Now,
	}
}

// Quotes returns one quote per crop, in the store's authored order.
func (b *Board) Quotes() []Quote {
	updated := b.now().UTC().Format(time.RFC3339)

	ids := b.store.CropIDs()
	quotes := make([]Quote, 0, len(ids))
	for _, id := range ids {
		profile, ok := b.store.Crop(id)
		if !ok {
			continue
		}

		variation := (b.rng.Float64() - 0.5) * 2 * maxVariation
		price := profile.CurrentMarketPrice * (1 + variation)

		quotes = append(quotes, Quote{
			Crop:              id,
			CurrentPricePerKg: math.Round(price*100) / 100,
			MarketTrend:       b.trend(),
			LastUpdated:       updated,
		})
	}
	return quotes
}

// trend draws up 30% / stable 40% / down 30%, matching the backend's
// quote simulation.
func (b *Board) trend() string {
	switch v := b.rng.Float64(); {
	case v > 0.7:
		return "up"
	case v > 0.3:
		return "stable"
	default:
		return "down"
	}
}
