package api

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/agrisense/advisor-cli/internal/engine"
)

// flexFloat accepts a JSON number, a numeric string, null or a
// non-numeric value, coercing everything unparseable to zero. The
// recommendation request is deliberately lenient: a blank form field must
// yield a recommendation, not an error.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// recommendRequest carries the seven inputs with the exact upstream
// field names, including the capitalized nutrient keys.
type recommendRequest struct {
	N           flexFloat `json:"N"`
	P           flexFloat `json:"P"`
	K           flexFloat `json:"K"`
	Temperature flexFloat `json:"temperature"`
	Humidity    flexFloat `json:"humidity"`
	PH          flexFloat `json:"ph"`
	Rainfall    flexFloat `json:"rainfall"`
}

// decodeSample reads a recommendation request body. Only malformed JSON
// is an error; missing or non-numeric fields coerce to zero.
func decodeSample(body io.Reader) (engine.Sample, error) {
	var req recommendRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return engine.Sample{}, eris.Wrap(err, "api: decode sample")
	}
	return engine.Sample{
		N:           float64(req.N),
		P:           float64(req.P),
		K:           float64(req.K),
		Temperature: float64(req.Temperature),
		Humidity:    float64(req.Humidity),
		PH:          float64(req.PH),
		Rainfall:    float64(req.Rainfall),
	}, nil
}

// parseArea parses the area query parameter strictly.
func parseArea(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, eris.Wrap(err, "api: parse area")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, eris.New("api: non-positive area")
	}
	return v, nil
}
