package scoring

import (
	"github.com/chargescope/chargescope/pkg/charging"
)

// OperatorShare is one operator's slice of the local market.
type OperatorShare struct {
	Name        string  `json:"name"`
	Stations    int     `json:"stations"`
	Connectors  int     `json:"connectors"`
	MarketShare float64 `json:"market_share"` // percent, one decimal
}

// MarketAnalysis describes operator concentration for a search area.
type MarketAnalysis struct {
	TotalOperators int             `json:"total_operators"`
	TopOperator    string          `json:"top_operator"`
	Shares         []OperatorShare `json:"distribution"`
	HHI            float64         `json:"hhi_index"`
	Concentration  string          `json:"market_concentration"`
}

const maxReportedOperators = 10

// AnalyzeOperators computes market share and concentration for a station
// set. Shares and the HHI cover the top ten operators only; long-tail
// operators with tiny shares contribute negligibly to concentration, so the
// index is a close approximation of the textbook all-operator HHI.
// Ordering is deterministic: station count descending, then name.
func AnalyzeOperators(set *charging.StationSet) MarketAnalysis {
	counts := set.OperatorCounts()
	total := len(set.Stations)

	analysis := MarketAnalysis{TotalOperators: len(counts)}
	if total == 0 || len(counts) == 0 {
		analysis.TopOperator = "N/A"
		analysis.Concentration = "Competitive"
		return analysis
	}
	analysis.TopOperator = counts[0].Name

	top := counts
	if len(top) > maxReportedOperators {
		top = top[:maxReportedOperators]
	}

	var hhi float64
	for _, oc := range top {
		share := round1(float64(oc.Stations) / float64(total) * 100)
		analysis.Shares = append(analysis.Shares, OperatorShare{
			Name:        oc.Name,
			Stations:    oc.Stations,
			Connectors:  oc.Connectors,
			MarketShare: share,
		})
		hhi += (share / 100) * (share / 100) * 10000
	}
	analysis.HHI = hhi

	switch {
	case hhi < 1500:
		analysis.Concentration = "Competitive"
	case hhi < 2500:
		analysis.Concentration = "Moderate"
	default:
		analysis.Concentration = "Concentrated"
	}
	return analysis
}
