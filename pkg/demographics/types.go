// Package demographics defines the socioeconomic input records consumed by
// the scoring engine, with validation at the boundary where external data
// enters the system.
package demographics

import "fmt"

// Region holds sub-national (US county-level) demographics.
// Produced by the census provider, consumed once per score computation.
type Region struct {
	Name          string  `json:"name"`
	Population    int64   `json:"population"`
	MedianIncome  float64 `json:"median_income"`
	PovertyRate   float64 `json:"poverty_rate"`    // percent, 0-100
	NoVehicleRate float64 `json:"no_vehicle_rate"` // percent, 0-100
}

// Country holds country-level demographics used when no sub-national data
// source exists for the target region.
type Country struct {
	Name              string   `json:"name"`
	Code              string   `json:"code"` // ISO alpha-3
	Population        int64    `json:"population"`
	IncomePerCapita   float64  `json:"income_per_capita"`
	IncomeLevel       Level    `json:"income_level"`
	PovertyRate       *float64 `json:"poverty_rate,omitempty"` // nil when unreported
	UrbanPercent      float64  `json:"urban_percent"`
	ElectricityAccess float64  `json:"electricity_access_percent"`
	EVReadiness       float64  `json:"ev_readiness_score"` // 0-100
	VehiclesPer1000   float64  `json:"vehicles_per_1000"`
}

// Level categorizes an income bracket relative to fixed benchmarks.
type Level string

const (
	LevelVeryHigh    Level = "Very High Income"
	LevelHigh        Level = "High Income"
	LevelUpperMiddle Level = "Upper Middle Income"
	LevelMiddle      Level = "Middle Income"
	LevelLowerMiddle Level = "Lower Middle Income"
	LevelLow         Level = "Low Income"
)

// USIncomeLevel categorizes a US median household income against national
// percentile approximations.
func USIncomeLevel(medianIncome float64) (Level, int) {
	switch {
	case medianIncome >= 150000:
		return LevelVeryHigh, 95
	case medianIncome >= 100000:
		return LevelHigh, 80
	case medianIncome >= 75000:
		return LevelUpperMiddle, 60
	case medianIncome >= 50000:
		return LevelMiddle, 40
	case medianIncome >= 35000:
		return LevelLowerMiddle, 25
	default:
		return LevelLow, 10
	}
}

// WorldBankIncomeLevel categorizes a GDP-per-capita figure into the coarser
// country tiers used by the global equity scorer.
func WorldBankIncomeLevel(gdpPerCapita float64) Level {
	switch {
	case gdpPerCapita >= 40000:
		return LevelHigh
	case gdpPerCapita >= 12000:
		return LevelUpperMiddle
	case gdpPerCapita >= 4000:
		return LevelLowerMiddle
	default:
		return LevelLow
	}
}

// Validate reports the first domain-constraint violation in the record.
// Out-of-range values are a data-quality error for the caller to handle,
// never silently clamped.
func (r Region) Validate() error {
	if r.Population < 0 {
		return fmt.Errorf("region %q: negative population %d", r.Name, r.Population)
	}
	if r.MedianIncome < 0 {
		return fmt.Errorf("region %q: negative median income %.2f", r.Name, r.MedianIncome)
	}
	if r.PovertyRate < 0 || r.PovertyRate > 100 {
		return fmt.Errorf("region %q: poverty rate %.2f outside [0,100]", r.Name, r.PovertyRate)
	}
	if r.NoVehicleRate < 0 || r.NoVehicleRate > 100 {
		return fmt.Errorf("region %q: no-vehicle rate %.2f outside [0,100]", r.Name, r.NoVehicleRate)
	}
	return nil
}

// Validate reports the first domain-constraint violation in the record.
func (c Country) Validate() error {
	if c.Population < 0 {
		return fmt.Errorf("country %q: negative population %d", c.Code, c.Population)
	}
	if c.IncomePerCapita < 0 {
		return fmt.Errorf("country %q: negative income per capita %.2f", c.Code, c.IncomePerCapita)
	}
	if c.PovertyRate != nil && (*c.PovertyRate < 0 || *c.PovertyRate > 100) {
		return fmt.Errorf("country %q: poverty rate %.2f outside [0,100]", c.Code, *c.PovertyRate)
	}
	if c.UrbanPercent < 0 || c.UrbanPercent > 100 {
		return fmt.Errorf("country %q: urban percent %.2f outside [0,100]", c.Code, c.UrbanPercent)
	}
	if c.ElectricityAccess < 0 || c.ElectricityAccess > 100 {
		return fmt.Errorf("country %q: electricity access %.2f outside [0,100]", c.Code, c.ElectricityAccess)
	}
	return nil
}
