package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/chargescope/chargescope/pkg/charging"
)

// Gap flags a structural weakness in the local charging network.
type Gap struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"` // high, medium
	Description string `json:"description"`
}

// Gap types.
const (
	GapFastCharging      = "fast_charging"
	GapOperatorDiversity = "operator_diversity"
	GapCoverageDensity   = "coverage_density"
)

// IdentifyGaps scans a station set for infrastructure gaps: too few DC fast
// chargers, too few competing operators, or low overall density. An empty
// slice means no significant gaps.
func IdentifyGaps(set *charging.StationSet) []Gap {
	var gaps []Gap

	fastChargers := 0
	operators := make(map[string]bool)
	for i := range set.Stations {
		s := &set.Stations[i]
		operators[s.Operator.Name] = true
		for _, c := range s.Connectors {
			if c.PowerKW > 50 {
				fastChargers++
			}
		}
	}

	if float64(fastChargers) < float64(len(set.Stations))*0.1 {
		gaps = append(gaps, Gap{
			Type:        GapFastCharging,
			Severity:    "high",
			Description: fmt.Sprintf("Only %d DC fast chargers available", fastChargers),
		})
	}

	if len(operators) < 3 {
		gaps = append(gaps, Gap{
			Type:        GapOperatorDiversity,
			Severity:    "medium",
			Description: fmt.Sprintf("Limited operator diversity (%d operators)", len(operators)),
		})
	}

	if set.RadiusKM > 0 {
		density := float64(len(set.Stations)) / (math.Pi * set.RadiusKM * set.RadiusKM)
		if density < 1 {
			gaps = append(gaps, Gap{
				Type:        GapCoverageDensity,
				Severity:    "high",
				Description: fmt.Sprintf("Low station density (%.2f/sq km)", density),
			})
		}
	}

	return gaps
}

// GapSummary joins gap descriptions into a single report line.
func GapSummary(gaps []Gap) string {
	if len(gaps) == 0 {
		return "No significant gaps identified"
	}
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = g.Description
	}
	return strings.Join(parts, "; ")
}
