// Package climate estimates how ambient temperature affects EV driving
// range. Cold weather cuts range sharply through battery chemistry and cabin
// heating; extreme heat costs a smaller amount through cooling load.
package climate

import "math"

// rangePoint anchors the piecewise-linear range curve at one temperature.
type rangePoint struct {
	TempC  float64
	Factor float64
}

// Anchor points for the range factor curve. Range peaks in the 20-25C band
// and is halved at -20C.
var rangeCurve = []rangePoint{
	{-20, 0.50},
	{-10, 0.60},
	{0, 0.75},
	{10, 0.90},
	{20, 1.00},
	{25, 1.00},
	{30, 0.95},
	{35, 0.90},
	{40, 0.85},
}

// RangeFactor returns the expected fraction of rated range at the given
// ambient temperature, interpolated linearly between anchor points and
// clamped flat beyond them. The result is rounded to two decimals.
func RangeFactor(tempC float64) float64 {
	if tempC <= rangeCurve[0].TempC {
		return rangeCurve[0].Factor
	}
	last := rangeCurve[len(rangeCurve)-1]
	if tempC >= last.TempC {
		return last.Factor
	}

	for i := 0; i < len(rangeCurve)-1; i++ {
		a, b := rangeCurve[i], rangeCurve[i+1]
		if tempC >= a.TempC && tempC <= b.TempC {
			factor := a.Factor + (b.Factor-a.Factor)*(tempC-a.TempC)/(b.TempC-a.TempC)
			return math.Round(factor*100) / 100
		}
	}
	return 1.0
}

// Impact describes the severity of weather-induced range loss.
type Impact struct {
	Level          string `json:"level"` // Minimal, Low, Moderate, High
	Color          string `json:"color"`
	Recommendation string `json:"recommendation"`
}

// ImpactForFactor classifies a range factor into an impact level with a
// driver-facing recommendation.
func ImpactForFactor(factor float64) Impact {
	switch {
	case factor >= 0.95:
		return Impact{
			Level:          "Minimal",
			Color:          "green",
			Recommendation: "Optimal conditions for EV charging and driving.",
		}
	case factor >= 0.85:
		return Impact{
			Level:          "Low",
			Color:          "blue",
			Recommendation: "Good conditions. Minor range reduction expected.",
		}
	case factor >= 0.70:
		return Impact{
			Level:          "Moderate",
			Color:          "orange",
			Recommendation: "Plan for reduced range. Consider charging more frequently.",
		}
	default:
		return Impact{
			Level:          "High",
			Color:          "red",
			Recommendation: "Significant range reduction. Plan routes carefully and charge frequently.",
		}
	}
}

// Conditions holds current weather plus its derived range impact.
type Conditions struct {
	TemperatureC float64 `json:"temperature_c"`
	Description  string  `json:"description,omitempty"`
	WindSpeedKMH float64 `json:"wind_speed_kmh,omitempty"`
	RangeFactor  float64 `json:"range_factor"`
	Impact       Impact  `json:"impact"`
}

// ForecastSummary aggregates range factors over a multi-day forecast.
type ForecastSummary struct {
	AvgRangeFactor float64 `json:"avg_range_factor"`
	MinRangeFactor float64 `json:"min_range_factor"`
	MaxRangeFactor float64 `json:"max_range_factor"`
	Days           int     `json:"days"`
}

// Analyze builds the full range-impact view for current conditions plus a
// daily mean-temperature forecast. An empty forecast yields a neutral
// summary with all factors at 1.0.
func Analyze(currentTempC float64, forecastTempsC []float64) (Conditions, ForecastSummary) {
	factor := RangeFactor(currentTempC)
	cond := Conditions{
		TemperatureC: currentTempC,
		RangeFactor:  factor,
		Impact:       ImpactForFactor(factor),
	}

	summary := ForecastSummary{AvgRangeFactor: 1.0, MinRangeFactor: 1.0, MaxRangeFactor: 1.0}
	if len(forecastTempsC) > 0 {
		var sum float64
		min, max := math.Inf(1), math.Inf(-1)
		for _, temp := range forecastTempsC {
			f := RangeFactor(temp)
			sum += f
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
		}
		summary = ForecastSummary{
			AvgRangeFactor: math.Round(sum/float64(len(forecastTempsC))*100) / 100,
			MinRangeFactor: min,
			MaxRangeFactor: max,
			Days:           len(forecastTempsC),
		}
	}
	return cond, summary
}
