package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chargescope/chargescope/internal/analysis"
)

// TerminalRenderer renders a report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade string) string {
	if noColor() {
		return ""
	}
	switch grade {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "F":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *analysis.Report) error {
	loc := report.Location.Name
	if loc == "" {
		loc = fmt.Sprintf("%.4f, %.4f", report.Location.Latitude, report.Location.Longitude)
	}
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("ChargeScope: %s — %s (%.1f km radius)",
		titleFor(report.Kind), loc, report.Location.RadiusKM)))

	if report.Partial {
		fmt.Fprintf(w, "%s\n\n", colored("Partial result: "+report.PartialReason, colorYellow))
	}

	r.renderStations(w, report)
	r.renderCoverage(w, report)
	r.renderOperators(w, report)
	r.renderGaps(w, report)
	r.renderEquity(w, report)
	r.renderAccess(w, report)
	r.renderConvenience(w, report)
	r.renderClimate(w, report)
	r.renderRecommendations(w, report)

	if report.Narrative != "" {
		fmt.Fprintln(w, bold("Summary:"))
		for _, line := range wrapText(report.Narrative, 76) {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func titleFor(kind string) string {
	switch kind {
	case "infrastructure":
		return "Infrastructure Analysis"
	case "regional_equity":
		return "Regional Equity Analysis"
	case "global_equity":
		return "Global Equity Analysis"
	case "accessibility":
		return "Accessibility Analysis"
	default:
		return "Analysis"
	}
}

func (r *TerminalRenderer) renderStations(w io.Writer, report *analysis.Report) {
	if report.Stats == nil {
		return
	}
	s := report.Stats
	fmt.Fprintf(w, "Stations: %d (%d connectors, %d fast, %d operational, %d public, %d operators)\n",
		s.StationCount, s.TotalConnectors, s.FastChargers, s.Operational, s.PublicAccess, s.UniqueOperators)
	if s.Power.MaxKW > 0 {
		fmt.Fprintf(w, "Power:    %.0f-%.0f kW per site (avg %.0f kW)\n", s.Power.MinKW, s.Power.MaxKW, s.Power.AvgKW)
	}

	if report.Levels != nil {
		fmt.Fprintln(w, "Charging levels:")
		for _, lc := range report.Levels.Levels {
			if lc.Count == 0 {
				continue
			}
			fmt.Fprintf(w, "  %-18s %s  %4d connectors (%.1f%%)\n",
				lc.Level, dim(lc.PowerRange), lc.Count, lc.Percentage)
		}
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderCoverage(w io.Writer, report *analysis.Report) {
	if report.Coverage == nil {
		return
	}
	c := report.Coverage
	fmt.Fprintf(w, "Coverage: %s — %.2f stations/sq km over %.1f sq km\n",
		bold(c.Rating), c.StationDensity, c.AreaKM2)
	fmt.Fprintf(w, "Distribution: %s (evenness %.2f)\n\n", c.Evenness.Rating, c.Evenness.Score)
}

func (r *TerminalRenderer) renderOperators(w io.Writer, report *analysis.Report) {
	if report.Market == nil || len(report.Market.Shares) == 0 {
		return
	}
	m := report.Market
	fmt.Fprintf(w, "Operators: %d total, %s market (HHI %.0f)\n", m.TotalOperators, m.Concentration, m.HHI)
	for _, share := range m.Shares {
		fmt.Fprintf(w, "  %-28s %3d stations  %5.1f%%\n", share.Name, share.Stations, share.MarketShare)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderGaps(w io.Writer, report *analysis.Report) {
	if report.GapSummary == "" {
		return
	}
	if len(report.Gaps) == 0 {
		fmt.Fprintf(w, "Gaps: %s\n\n", report.GapSummary)
		return
	}
	fmt.Fprintln(w, "Gaps:")
	for _, g := range report.Gaps {
		marker := colored("●", colorYellow)
		if g.Severity == "high" {
			marker = colored("●", colorRed)
		}
		fmt.Fprintf(w, "  %s %s\n", marker, g.Description)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderEquity(w io.Writer, report *analysis.Report) {
	if report.Equity == nil {
		return
	}
	e := report.Equity
	gc := gradeColor(e.Grade)
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Equity: Grade %s — Score %.1f/%.0f (%s)",
		colored(e.Grade, gc), e.Score, e.Scale, e.Rating)))
	for name, value := range e.Components {
		fmt.Fprintf(w, "  %-26s %5.1f\n", name, value)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderAccess(w io.Writer, report *analysis.Report) {
	if report.Access == nil {
		return
	}
	a := report.Access
	fmt.Fprintf(w, "Access: %s — priority %s (%.3f stations per 1000 residents)\n\n",
		a.Description, bold(a.Priority), a.StationsPer1000)
}

func (r *TerminalRenderer) renderConvenience(w io.Writer, report *analysis.Report) {
	if report.Convenience == nil {
		return
	}
	c := report.Convenience
	gc := gradeColor(c.Grade)
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Convenience: Grade %s — Score %.1f/%.0f",
		colored(c.Grade, gc), c.Score, c.Scale)))
	for _, sc := range report.StationScores {
		fmt.Fprintf(w, "  %-28s %4.1f  %s\n", sc.StationName, sc.Score, sc.Grade)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderClimate(w io.Writer, report *analysis.Report) {
	if report.Climate == nil {
		return
	}
	c := report.Climate
	fmt.Fprintf(w, "Climate: %.1fC — range factor %.2f (%s impact)\n", c.TemperatureC, c.RangeFactor, c.Impact.Level)
	fmt.Fprintf(w, "  %s\n", dim(c.Impact.Recommendation))
	if report.Forecast != nil && report.Forecast.Days > 0 {
		fmt.Fprintf(w, "  %d-day forecast: range factor %.2f avg (%.2f-%.2f)\n",
			report.Forecast.Days, report.Forecast.AvgRangeFactor,
			report.Forecast.MinRangeFactor, report.Forecast.MaxRangeFactor)
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) renderRecommendations(w io.Writer, report *analysis.Report) {
	if len(report.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(w, "Recommendations:")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "  • [%s] %s\n", rec.Priority, bold(rec.Recommendation))
		if rec.Rationale != "" {
			for _, line := range wrapText(rec.Rationale, 70) {
				fmt.Fprintf(w, "    %s\n", dim(line))
			}
		}
	}
	fmt.Fprintln(w)
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
