package scoring

import (
	"fmt"

	"github.com/chargescope/chargescope/pkg/demographics"
)

// RecommendRegional generates targeted improvement suggestions for a US
// region from fixed rule thresholds. At least one recommendation is always
// returned.
func RecommendRegional(score float64, region demographics.Region, stationsPer1000 float64) []Recommendation {
	var recs []Recommendation

	if stationsPer1000 < 0.3 {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Infrastructure Expansion",
			Recommendation: "Significantly increase charging station deployment",
			Rationale:      fmt.Sprintf("Current density (%.2f/1000) is below minimum threshold", stationsPer1000),
		})
	}

	if region.PovertyRate > 15 {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Affordability",
			Recommendation: "Implement subsidized charging programs",
			Rationale:      fmt.Sprintf("High poverty rate (%g%%) requires affordability measures", region.PovertyRate),
		})
		recs = append(recs, Recommendation{
			Priority:       "Medium",
			Category:       "Location Strategy",
			Recommendation: "Prioritize charging at affordable housing and public facilities",
			Rationale:      "Increase access for low-income residents",
		})
	}

	level, _ := demographics.USIncomeLevel(region.MedianIncome)
	if level == demographics.LevelLow || level == demographics.LevelLowerMiddle {
		recs = append(recs, Recommendation{
			Priority:       "Medium",
			Category:       "Financial Support",
			Recommendation: "Partner with utilities for reduced-rate charging",
			Rationale:      "Make EV ownership more accessible for lower-income households",
		})
	}

	if score < 50 {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Equity Focus",
			Recommendation: "Conduct detailed equity mapping study",
			Rationale:      fmt.Sprintf("Low equity score (%.1f) indicates significant disparities", score),
		})
	}

	if len(recs) < 3 {
		recs = append(recs, Recommendation{
			Priority:       "Standard",
			Category:       "Community Engagement",
			Recommendation: "Engage community in charging location planning",
			Rationale:      "Ensure infrastructure meets local needs",
		})
	}

	return recs
}

// RecommendGlobal generates improvement suggestions adapted to a country's
// income tier and readiness indicators.
func RecommendGlobal(score float64, country demographics.Country, stationCount int) []Recommendation {
	var recs []Recommendation

	if stationCount < 50 {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Infrastructure Expansion",
			Recommendation: "Significantly increase charging station deployment",
			Rationale:      fmt.Sprintf("Only %d stations found in search area", stationCount),
		})
	}

	if country.IncomeLevel == demographics.LevelLow || country.IncomeLevel == demographics.LevelLowerMiddle {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Affordability",
			Recommendation: "Implement subsidized public charging programs",
			Rationale:      "Lower income level requires affordability measures",
		})
		recs = append(recs, Recommendation{
			Priority:       "Medium",
			Category:       "Infrastructure",
			Recommendation: "Focus on grid reliability before EV expansion",
			Rationale:      "Stable electricity is prerequisite for EV adoption",
		})
	}

	if country.PovertyRate != nil && *country.PovertyRate > 15 {
		recs = append(recs, Recommendation{
			Priority:       "High",
			Category:       "Equity",
			Recommendation: "Target charging infrastructure in underserved areas",
			Rationale:      fmt.Sprintf("Poverty rate of %g%% indicates equity concerns", *country.PovertyRate),
		})
	}

	if country.EVReadiness < 50 {
		recs = append(recs, Recommendation{
			Priority:       "Medium",
			Category:       "Policy",
			Recommendation: "Develop national EV adoption strategy",
			Rationale:      fmt.Sprintf("EV readiness score of %g indicates need for policy support", country.EVReadiness),
		})
	}

	if len(recs) < 3 {
		recs = append(recs, Recommendation{
			Priority:       "Standard",
			Category:       "Community Engagement",
			Recommendation: "Conduct community needs assessment for charging locations",
			Rationale:      "Ensure infrastructure meets local mobility patterns",
		})
	}

	return recs
}
