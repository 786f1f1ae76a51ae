package scoring

import (
	"fmt"
	"math"

	"github.com/chargescope/chargescope/pkg/demographics"
)

// Component keys of the regional equity composite.
const (
	ComponentAccess          = "access"
	ComponentAffordability   = "affordability"
	ComponentMobility        = "mobility"
	ComponentIncomeAlignment = "income_alignment"
)

const weightTolerance = 1e-9

// StationsPer1000 returns the charging-station rate per 1000 residents.
// A non-positive population yields a rate of 0 rather than a division error.
func StationsPer1000(stationCount int, population int64) float64 {
	if population <= 0 {
		return 0
	}
	return float64(stationCount) / float64(population) * 1000
}

// ScoreRegionalEquity computes the regional (US county-level) equity score
// from the station count and the region's demographics. Components are
// rounded to one decimal; the composite score is the exact weighted sum of
// the rounded components.
func ScoreRegionalEquity(stationCount int, region demographics.Region, w EquityWeights) (*ScoreResult, error) {
	if stationCount < 0 {
		return nil, &InvalidInputError{Field: "station_count", Value: float64(stationCount), Reason: "must be non-negative"}
	}
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("scoring regional equity: %w", err)
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return nil, &InvalidInputError{Field: "weights", Value: w.Sum(), Reason: "component weights must sum to 1.0"}
	}

	per1000 := StationsPer1000(stationCount, region.Population)

	access := round1(accessScore(per1000))
	affordability := round1(affordabilityScore(region.PovertyRate))
	mobility := round1(mobilityScore(region.NoVehicleRate))
	alignment := round1(incomeAlignmentScore(region.MedianIncome, access, per1000))

	score := access*w.Access +
		affordability*w.Affordability +
		mobility*w.Mobility +
		alignment*w.IncomeAlignment

	grade, rating := EquityGrade(score)
	return &ScoreResult{
		Score:  score,
		Scale:  100,
		Grade:  grade,
		Rating: rating,
		Components: map[string]float64{
			ComponentAccess:          access,
			ComponentAffordability:   affordability,
			ComponentMobility:        mobility,
			ComponentIncomeAlignment: alignment,
		},
	}, nil
}

// accessScore rewards station density per 1000 residents on a piecewise
// scale that saturates at one station per 1000.
func accessScore(per1000 float64) float64 {
	switch {
	case per1000 >= 1.0:
		return 100
	case per1000 >= 0.5:
		return 70 + (per1000-0.5)*60
	case per1000 >= 0.1:
		return 30 + (per1000-0.1)*100
	default:
		return per1000 * 300
	}
}

// affordabilityScore penalizes poverty with increasingly steep slopes,
// floored at zero.
func affordabilityScore(povertyRate float64) float64 {
	switch {
	case povertyRate <= 5:
		return 100
	case povertyRate <= 10:
		return 80 - (povertyRate-5)*4
	case povertyRate <= 20:
		return 60 - (povertyRate-10)*3
	default:
		return math.Max(30-(povertyRate-20)*1.5, 0)
	}
}

// mobilityScore reflects how well charging serves households without
// vehicles. High no-vehicle rates indicate transit dependence, so the score
// floors at 20 rather than zero.
func mobilityScore(noVehicleRate float64) float64 {
	switch {
	case noVehicleRate <= 5:
		return 90
	case noVehicleRate <= 10:
		return 70 + (10-noVehicleRate)*4
	case noVehicleRate <= 20:
		return 50 + (20-noVehicleRate)*2
	default:
		return math.Max(50-(noVehicleRate-20), 20)
	}
}

// incomeAlignmentScore measures whether charging availability matches the
// area's income relative to the national median. Wealthy areas with strong
// access get a small bonus; lower-income areas are scored on whether the
// infrastructure under-serves them.
func incomeAlignmentScore(medianIncome, accessScore, per1000 float64) float64 {
	ratio := medianIncome / NationalMedianIncome
	switch {
	case ratio >= 1.5:
		return math.Min(accessScore*1.1, 100)
	case ratio >= 0.8:
		return 70 + (ratio-0.8)*43
	case per1000 < 0.3:
		return 40
	default:
		return 60
	}
}
