package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/chargescope/chargescope/pkg/demographics"
)

// Component keys of the global equity composite.
const (
	ComponentEconomicReadiness       = "economic_readiness"
	ComponentInfrastructureReadiness = "infrastructure_readiness"
)

// DensityBenchmark returns the expected station density (per square km) for
// a country income tier. Richer countries are held to a higher standard.
func DensityBenchmark(level demographics.Level) float64 {
	switch level {
	case demographics.LevelVeryHigh, demographics.LevelHigh:
		return BenchmarkHighIncome
	case demographics.LevelLow:
		return BenchmarkLowIncome
	default:
		return BenchmarkMiddleIncome
	}
}

// ScoreGlobalEquity computes the country-adaptive equity score for a search
// area. The access component compares observed station density against a
// benchmark chosen by the country's income tier, so a sparse network in a
// low-income country is not graded against wealthy-country expectations.
func ScoreGlobalEquity(stationCount int, radiusKM float64, country demographics.Country, w GlobalWeights) (*ScoreResult, error) {
	if stationCount < 0 {
		return nil, &InvalidInputError{Field: "station_count", Value: float64(stationCount), Reason: "must be non-negative"}
	}
	if radiusKM <= 0 {
		return nil, &InvalidInputError{Field: "radius_km", Value: radiusKM, Reason: "must be positive"}
	}
	if err := country.Validate(); err != nil {
		return nil, fmt.Errorf("scoring global equity: %w", err)
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return nil, &InvalidInputError{Field: "weights", Value: w.Sum(), Reason: "component weights must sum to 1.0"}
	}

	area := math.Pi * radiusKM * radiusKM
	density := float64(stationCount) / area

	access := round1(globalAccessScore(density, country.IncomeLevel))
	economic := round1(economicReadinessScore(country.IncomePerCapita))

	var poverty float64
	if country.PovertyRate != nil {
		poverty = *country.PovertyRate
	}
	affordability := round1(globalAffordabilityScore(poverty))
	infrastructure := round1(infrastructureReadinessScore(country))

	score := access*w.Access +
		economic*w.EconomicReadiness +
		affordability*w.Affordability +
		infrastructure*w.InfrastructureReadiness

	grade, rating := GlobalEquityGrade(score)
	return &ScoreResult{
		Score:  score,
		Scale:  100,
		Grade:  grade,
		Rating: rating,
		Components: map[string]float64{
			ComponentAccess:                  access,
			ComponentEconomicReadiness:       economic,
			ComponentAffordability:           affordability,
			ComponentInfrastructureReadiness: infrastructure,
		},
	}, nil
}

// globalAccessScore scores observed density against the tier benchmark.
// The ratio is capped at 2x benchmark so over-built areas cannot dominate
// the composite.
func globalAccessScore(density float64, level demographics.Level) float64 {
	benchmark := DensityBenchmark(level)
	ratio := math.Min(density/benchmark, 2.0)
	return math.Min(ratio*50, 100)
}

// economicReadinessScore maps income per capita to EV purchasing power.
func economicReadinessScore(incomePerCapita float64) float64 {
	switch {
	case incomePerCapita >= 50000:
		return 100
	case incomePerCapita >= 30000:
		return 80
	case incomePerCapita >= 15000:
		return 60
	case incomePerCapita >= 5000:
		return 40
	default:
		return 20
	}
}

// globalAffordabilityScore maps national poverty rate to charging
// affordability. Countries that do not report poverty score as if it were
// zero.
func globalAffordabilityScore(povertyRate float64) float64 {
	switch {
	case povertyRate <= 5:
		return 100
	case povertyRate <= 10:
		return 80
	case povertyRate <= 20:
		return 60
	case povertyRate <= 30:
		return 40
	default:
		return 20
	}
}

// infrastructureReadinessScore blends grid access with EV readiness. The US
// gets a fixed score because its readiness inputs come from a different data
// source and are not comparable.
func infrastructureReadinessScore(country demographics.Country) float64 {
	if strings.EqualFold(country.Code, "USA") {
		return 90
	}
	return (country.EVReadiness + country.ElectricityAccess) / 2
}

// EVReadiness derives a 0-100 readiness score from national indicators:
// grid coverage, purchasing power, and urbanization.
func EVReadiness(electricityAccess, gdpPerCapita, urbanPercent float64) float64 {
	return math.Min(100, electricityAccess*0.3+math.Min(gdpPerCapita/500, 40)+urbanPercent*0.3)
}
