package analysis

import (
	"fmt"
	"strings"
)

const narrativeSystemPrompt = "You are an EV infrastructure analyst. Write a short, factual summary " +
	"of the charging analysis below for a city planning audience. Do not invent numbers."

// narrativePrompt flattens the report's numeric findings into a plain-text
// prompt. Only sections present in the report are mentioned.
func narrativePrompt(report *Report) string {
	var b strings.Builder

	loc := report.Location.Name
	if loc == "" {
		loc = fmt.Sprintf("%.4f, %.4f", report.Location.Latitude, report.Location.Longitude)
	}
	fmt.Fprintf(&b, "Analysis kind: %s\nLocation: %s (radius %.1f km)\n", report.Kind, loc, report.Location.RadiusKM)

	if report.Stats != nil {
		fmt.Fprintf(&b, "Stations: %d (%d connectors, %d fast chargers, %d operators)\n",
			report.Stats.StationCount, report.Stats.TotalConnectors, report.Stats.FastChargers, report.Stats.UniqueOperators)
	}
	if report.Coverage != nil {
		fmt.Fprintf(&b, "Coverage: %s (%.2f stations/sq km), distribution %s\n",
			report.Coverage.Rating, report.Coverage.StationDensity, report.Coverage.Evenness.Rating)
	}
	if report.Market != nil {
		fmt.Fprintf(&b, "Market: %d operators, top %s, %s (HHI %.0f)\n",
			report.Market.TotalOperators, report.Market.TopOperator, report.Market.Concentration, report.Market.HHI)
	}
	if report.GapSummary != "" {
		fmt.Fprintf(&b, "Gaps: %s\n", report.GapSummary)
	}
	if report.Equity != nil {
		fmt.Fprintf(&b, "Equity score: %.2f/%.0f grade %s (%s)\n",
			report.Equity.Score, report.Equity.Scale, report.Equity.Grade, report.Equity.Rating)
	}
	if report.Access != nil {
		fmt.Fprintf(&b, "Access: %s, priority %s\n", report.Access.Description, report.Access.Priority)
	}
	if report.Convenience != nil {
		fmt.Fprintf(&b, "Convenience: %.1f/10 grade %s over %d sampled stations\n",
			report.Convenience.Score, report.Convenience.Grade, len(report.StationScores))
	}
	if report.Climate != nil {
		fmt.Fprintf(&b, "Climate: %.1fC, range factor %.2f (%s impact)\n",
			report.Climate.TemperatureC, report.Climate.RangeFactor, report.Climate.Impact.Level)
	}
	if report.Partial {
		fmt.Fprintf(&b, "Note: partial result, demographics unavailable (%s)\n", report.PartialReason)
	}
	return b.String()
}
