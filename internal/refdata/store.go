// Package refdata holds the static crop and district reference tables.
// The tables are authored market data, embedded at build time and
// read-only after Load.
package refdata

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed crops.yaml
var cropsYAML []byte

//go:embed districts.yaml
var districtsYAML []byte

// CropProfile describes one supported crop. Investment, revenue and profit
// figures are per hectare and independently authored: profit is the
// published figure, never revenue minus investment recomputed here.
type CropProfile struct {
	ID                   string   `json:"id" yaml:"id"`
	NameEN               string   `json:"name_en" yaml:"name_en"`
	NameHI               string   `json:"name_hi" yaml:"name_hi"`
	Season               string   `json:"season" yaml:"season"`
	WaterRequirement     string   `json:"water_requirement" yaml:"water_requirement"`
	InvestmentPerHa      float64  `json:"investment_per_ha" yaml:"investment_per_ha"`
	ExpectedRevenuePerHa float64  `json:"expected_revenue_per_ha" yaml:"expected_revenue_per_ha"`
	ExpectedProfitPerHa  float64  `json:"expected_profit_per_ha" yaml:"expected_profit_per_ha"`
	CurrentMarketPrice   float64  `json:"current_market_price" yaml:"current_market_price"`
	SuitableDistricts    []string `json:"suitable_districts" yaml:"suitable_districts"`
}

// WaterTier returns the tier prefix of the bilingual water requirement
// string: Low, Medium or High.
func (p CropProfile) WaterTier() string {
	tier, _, _ := strings.Cut(p.WaterRequirement, " /")
	return strings.TrimSpace(tier)
}

// DistrictProfile holds long-term climate averages for one district.
type DistrictProfile struct {
	Name               string   `json:"district" yaml:"name"`
	NameHI             string   `json:"name_hi" yaml:"name_hi"`
	AverageTemperature float64  `json:"average_temperature" yaml:"average_temperature"`
	AverageRainfall    float64  `json:"average_rainfall" yaml:"average_rainfall"`
	AverageHumidity    float64  `json:"average_humidity" yaml:"average_humidity"`
	SuitableCrops      []string `json:"suitable_crops" yaml:"suitable_crops"`
}

// Store is the read-only reference data store. Crop enumeration order is
// the authored file order, which the recommendation engine relies on for
// deterministic tie-breaking.
type Store struct {
	crops        map[string]CropProfile
	cropOrder    []string
	districts    map[string]DistrictProfile
	districtList []string
	defaultCrop  string
}

type cropsFile struct {
	Crops []CropProfile `yaml:"crops"`
}

type districtsFile struct {
	Districts []DistrictProfile `yaml:"districts"`
}

// Load builds a Store from the embedded reference tables.
func Load() (*Store, error) {
	return load(cropsYAML, districtsYAML)
}

// LoadFiles builds a Store from external YAML files, replacing the
// embedded tables. Used when operators override the authored data.
func LoadFiles(cropsPath, districtsPath string) (*Store, error) {
	cb, err := os.ReadFile(cropsPath)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read crops file")
	}
	db, err := os.ReadFile(districtsPath)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read districts file")
	}
	return load(cb, db)
}

func load(cropsData, districtsData []byte) (*Store, error) {
	var cf cropsFile
	if err := yaml.Unmarshal(cropsData, &cf); err != nil {
		return nil, eris.Wrap(err, "refdata: parse crops")
	}
	var df districtsFile
	if err := yaml.Unmarshal(districtsData, &df); err != nil {
		return nil, eris.Wrap(err, "refdata: parse districts")
	}

	s := &Store{
		crops:     make(map[string]CropProfile, len(cf.Crops)),
		districts: make(map[string]DistrictProfile, len(df.Districts)),
	}

	for _, c := range cf.Crops {
		if err := validateCrop(c); err != nil {
			return nil, err
		}
		if _, dup := s.crops[c.ID]; dup {
			return nil, eris.Errorf("refdata: duplicate crop %q", c.ID)
		}
		s.crops[c.ID] = c
		s.cropOrder = append(s.cropOrder, c.ID)
		if s.defaultCrop == "" && c.WaterTier() == "Low" {
			s.defaultCrop = c.ID
		}
	}
	if len(s.cropOrder) == 0 {
		return nil, eris.New("refdata: no crops defined")
	}
	// Every table must carry at least one low-water crop to act as the
	// zero-score fallback recommendation.
	if s.defaultCrop == "" {
		return nil, eris.New("refdata: no low-water default crop")
	}

	for _, d := range df.Districts {
		if d.Name == "" {
			return nil, eris.New("refdata: district with empty name")
		}
		if _, dup := s.districts[d.Name]; dup {
			return nil, eris.Errorf("refdata: duplicate district %q", d.Name)
		}
		s.districts[d.Name] = d
		s.districtList = append(s.districtList, d.Name)
	}

	zap.L().Debug("refdata: loaded",
		zap.Int("crops", len(s.cropOrder)),
		zap.Int("districts", len(s.districtList)),
		zap.String("default_crop", s.defaultCrop),
	)

	return s, nil
}

// validateCrop rejects malformed profiles at load time so the analyzers
// never have to guard against zero divisors at call time.
func validateCrop(c CropProfile) error {
	switch {
	case c.ID == "":
		return eris.New("refdata: crop with empty id")
	case c.CurrentMarketPrice <= 0:
		return eris.Errorf("refdata: crop %q has non-positive market price", c.ID)
	case c.InvestmentPerHa <= 0:
		return eris.Errorf("refdata: crop %q has non-positive investment", c.ID)
	case c.ExpectedRevenuePerHa <= 0:
		return eris.Errorf("refdata: crop %q has non-positive revenue", c.ID)
	case c.ExpectedProfitPerHa < 0:
		return eris.Errorf("refdata: crop %q has negative profit", c.ID)
	}
	return nil
}

// Crop returns the profile for the given identifier.
func (s *Store) Crop(id string) (CropProfile, bool) {
	c, ok := s.crops[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

// CropIDs returns all crop identifiers in authored order.
func (s *Store) CropIDs() []string {
	out := make([]string, len(s.cropOrder))
	copy(out, s.cropOrder)
	return out
}

// DefaultCrop returns the identifier used when no crop scores above zero:
// the first authored crop with a Low water requirement.
func (s *Store) DefaultCrop() string {
	return s.defaultCrop
}

// District returns the profile for the given district name. Lookup is
// case-insensitive on the English name.
func (s *Store) District(name string) (DistrictProfile, bool) {
	name = strings.TrimSpace(name)
	if d, ok := s.districts[name]; ok {
		return d, true
	}
	for _, n := range s.districtList {
		if strings.EqualFold(n, name) {
			return s.districts[n], true
		}
	}
	return DistrictProfile{}, false
}

// DistrictNames returns all district names in authored order.
func (s *Store) DistrictNames() []string {
	out := make([]string, len(s.districtList))
	copy(out, s.districtList)
	return out
}

// CropsForDistrict returns the crops whose profiles list the district as
// suitable, in authored crop order. Display-only information.
func (s *Store) CropsForDistrict(name string) []string {
	var out []string
	for _, id := range s.cropOrder {
		for _, d := range s.crops[id].SuitableDistricts {
			if strings.EqualFold(d, strings.TrimSpace(name)) {
				out = append(out, id)
				break
			}
		}
	}
	return out
}
