package engine

import "math"

// band is one additive scoring rule: if the input falls inside [lo, hi]
// the band's points are added. Bands on the same field are non-exclusive,
// so a broad band plus a tighter band inside it stack.
type band struct {
	lo, hi float64
	pts    int
}

func (b band) hits(v float64) bool {
	return v >= b.lo && v <= b.hi
}

// ruleSet holds the per-crop scoring bands over the seven sample fields.
// Per field the maximum attainable points are: rainfall 30, humidity 25,
// temperature 30, pH 15, and 5-10 for each nutrient. Every band minimum
// is above zero so an all-zero sample scores zero for every crop.
type ruleSet struct {
	rainfall    []band
	humidity    []band
	temperature []band
	ph          []band
	n           []band
	p           []band
	k           []band
}

func (r ruleSet) score(s Sample) int {
	total := 0
	total += bandScore(r.rainfall, s.Rainfall)
	total += bandScore(r.humidity, s.Humidity)
	total += bandScore(r.temperature, s.Temperature)
	total += bandScore(r.ph, s.PH)
	total += bandScore(r.n, s.N)
	total += bandScore(r.p, s.P)
	total += bandScore(r.k, s.K)
	return total
}

func bandScore(bands []band, v float64) int {
	pts := 0
	for _, b := range bands {
		if b.hits(v) {
			pts += b.pts
		}
	}
	return pts
}

const inf = math.MaxFloat64

// cropRules maps crop identifiers to their scoring tables. Thresholds
// follow the agronomic ranges the regional training data was generated
// from, widened into broad/tight tiers.
var cropRules = map[string]ruleSet{
	"rice": {
		rainfall:    []band{{100, inf, 15}, {150, inf, 15}},
		humidity:    []band{{60, inf, 12}, {70, inf, 13}},
		temperature: []band{{22, 30, 30}},
		ph:          []band{{5.5, 7.0, 15}},
		n:           []band{{80, inf, 10}},
		p:           []band{{40, inf, 5}},
		k:           []band{{40, inf, 5}},
	},
	"wheat": {
		rainfall:    []band{{20, 100, 15}, {30, 100, 15}},
		humidity:    []band{{50, 70, 12}, {55, 70, 13}},
		temperature: []band{{12, 25, 30}},
		ph:          []band{{6.0, 7.5, 15}},
		n:           []band{{50, inf, 10}},
		p:           []band{{30, inf, 5}},
		k:           []band{{30, inf, 5}},
	},
	"maize": {
		rainfall:    []band{{65, 180, 15}, {80, 180, 15}},
		humidity:    []band{{55, 75, 12}, {55, 70, 13}},
		temperature: []band{{18, 27, 30}},
		ph:          []band{{5.8, 7.0, 15}},
		n:           []band{{80, inf, 10}},
		p:           []band{{40, inf, 5}},
		k:           []band{{20, inf, 5}},
	},
	"cotton": {
		rainfall:    []band{{50, 150, 15}, {50, 120, 15}},
		humidity:    []band{{50, 80, 12}, {55, 80, 13}},
		temperature: []band{{21, 30, 30}},
		ph:          []band{{5.8, 8.0, 15}},
		n:           []band{{120, inf, 10}},
		p:           []band{{40, inf, 5}},
		k:           []band{{40, inf, 5}},
	},
	"sugarcane": {
		rainfall:    []band{{75, 165, 15}, {100, 165, 15}},
		humidity:    []band{{75, 85, 12}, {75, inf, 13}},
		temperature: []band{{21, 27, 30}},
		ph:          []band{{6.0, 7.5, 15}},
		n:           []band{{75, inf, 10}},
		p:           []band{{50, inf, 5}},
		k:           []band{{50, inf, 5}},
	},
	"chickpea": {
		rainfall:    []band{{65, 125, 15}, {65, 100, 15}},
		humidity:    []band{{65, 80, 12}, {65, 75, 13}},
		temperature: []band{{17, 27, 30}},
		ph:          []band{{6.0, 7.5, 15}},
		n:           []band{{40, inf, 5}},
		p:           []band{{60, inf, 10}},
		k:           []band{{80, inf, 5}},
	},
	"kidney_beans": {
		rainfall:    []band{{60, 140, 15}, {60, 110, 15}},
		humidity:    []band{{60, 80, 12}, {65, 75, 13}},
		temperature: []band{{15, 25, 30}},
		ph:          []band{{6.0, 7.0, 15}},
		n:           []band{{20, inf, 5}},
		p:           []band{{60, inf, 10}},
		k:           []band{{20, inf, 5}},
	},
	"banana": {
		rainfall:    []band{{100, 180, 15}, {120, 180, 15}},
		humidity:    []band{{75, 85, 12}, {75, inf, 13}},
		temperature: []band{{26, 30, 30}},
		ph:          []band{{6.0, 7.5, 15}},
		n:           []band{{100, inf, 10}},
		p:           []band{{75, inf, 5}},
		k:           []band{{50, inf, 5}},
	},
}

// baseYield is the fixed per-crop yield constant in kg/ha, scaled by the
// score ratio at recommendation time.
var baseYield = map[string]float64{
	"rice":         3500,
	"wheat":        2800,
	"maize":        3200,
	"cotton":       1500,
	"sugarcane":    24000,
	"chickpea":     1800,
	"kidney_beans": 1500,
	"banana":       4000,
}

// nitrogenFixing marks legumes that earn the sustainability bonus.
var nitrogenFixing = map[string]bool{
	"chickpea":     true,
	"kidney_beans": true,
}
