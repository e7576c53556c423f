package engine

import (
	"math"
	"strconv"
	"strings"
)

// Sample holds the seven soil and weather inputs for one recommendation
// request. Field names match the external JSON contract.
type Sample struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Coerce parses a raw field value, mapping anything non-numeric to zero.
// This leniency is deliberate policy: a farmer leaving a field blank gets
// a recommendation, not an error.
func Coerce(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

// Normalized returns a copy of the sample with NaN and infinite values
// coerced to zero, so scoring stays total and deterministic.
func (s Sample) Normalized() Sample {
	s.N = sanitize(s.N)
	s.P = sanitize(s.P)
	s.K = sanitize(s.K)
	s.Temperature = sanitize(s.Temperature)
	s.Humidity = sanitize(s.Humidity)
	s.PH = sanitize(s.PH)
	s.Rainfall = sanitize(s.Rainfall)
	return s
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
