package scoring

import (
	"math"

	"github.com/chargescope/chargescope/pkg/charging"
)

// Coverage summarizes how densely and evenly a search area is served.
type Coverage struct {
	AreaKM2          float64  `json:"area_sq_km"`
	StationDensity   float64  `json:"station_density"`
	ConnectorDensity float64  `json:"connector_density"`
	Rating           string   `json:"coverage_rating"`
	Score            int      `json:"coverage_score"` // 1 (Poor) .. 5 (Excellent)
	Evenness         Evenness `json:"distribution"`
}

// Evenness measures spatial distribution of stations about their centroid.
type Evenness struct {
	Score     float64        `json:"score"` // 0 (all in one quadrant) .. 1 (perfectly even)
	Rating    string         `json:"rating"`
	Quadrants map[string]int `json:"quadrants,omitempty"`
}

// AnalyzeCoverage computes density and distribution metrics for a station
// set. The search radius must be positive; an empty set is valid and scores
// as Poor coverage.
func AnalyzeCoverage(set *charging.StationSet) (Coverage, error) {
	if set.RadiusKM <= 0 {
		return Coverage{}, &InvalidInputError{Field: "radius_km", Value: set.RadiusKM, Reason: "must be positive"}
	}

	area := math.Pi * set.RadiusKM * set.RadiusKM
	density := float64(len(set.Stations)) / area

	var connectors int
	for i := range set.Stations {
		for _, c := range set.Stations[i].Connectors {
			qty := c.Quantity
			if qty <= 0 {
				qty = 1
			}
			connectors += qty
		}
	}

	rating, score := densityRating(density)
	return Coverage{
		AreaKM2:          round2(area),
		StationDensity:   round2(density),
		ConnectorDensity: round2(float64(connectors) / area),
		Rating:           rating,
		Score:            score,
		Evenness:         MeasureEvenness(set.Stations),
	}, nil
}

func densityRating(density float64) (string, int) {
	switch {
	case density >= 5:
		return "Excellent", 5
	case density >= 3:
		return "Good", 4
	case density >= 1:
		return "Moderate", 3
	case density >= 0.5:
		return "Limited", 2
	default:
		return "Poor", 1
	}
}

// MeasureEvenness scores how evenly stations spread across the four
// quadrants about their own centroid. Fewer than four stations cannot be
// meaningfully measured and return the neutral 0.5.
func MeasureEvenness(stations []charging.Station) Evenness {
	if len(stations) < 4 {
		return Evenness{Score: 0.5, Rating: "Insufficient data"}
	}

	var latSum, lonSum float64
	for i := range stations {
		latSum += stations[i].Latitude
		lonSum += stations[i].Longitude
	}
	centerLat := latSum / float64(len(stations))
	centerLon := lonSum / float64(len(stations))

	quadrants := map[string]int{"NE": 0, "NW": 0, "SE": 0, "SW": 0}
	for i := range stations {
		s := &stations[i]
		if s.Latitude >= centerLat {
			if s.Longitude >= centerLon {
				quadrants["NE"]++
			} else {
				quadrants["NW"]++
			}
		} else {
			if s.Longitude >= centerLon {
				quadrants["SE"]++
			} else {
				quadrants["SW"]++
			}
		}
	}

	total := float64(len(stations))
	expected := total / 4
	var variance float64
	for _, v := range quadrants {
		d := float64(v) - expected
		variance += d * d
	}
	variance /= 4

	// Worst case: every station in one quadrant.
	maxVariance := (total - expected) * (total - expected)
	score := 1.0
	if maxVariance > 0 {
		score = 1 - variance/maxVariance
	}

	return Evenness{
		Score:     round2(score),
		Rating:    evennessRating(score),
		Quadrants: quadrants,
	}
}

func evennessRating(score float64) string {
	switch {
	case score >= 0.8:
		return "Even"
	case score >= 0.6:
		return "Moderate"
	case score >= 0.4:
		return "Uneven"
	default:
		return "Clustered"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
