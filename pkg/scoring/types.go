// Package scoring implements the ChargeScope multi-factor scoring engine.
// It converts station, demographic, and amenity signals into normalized
// composite scores with letter grades and per-component breakdowns.
//
// Every scorer is a pure, single-pass function of its inputs: no I/O, no
// shared state, safe for concurrent use across regions.
package scoring

import (
	"fmt"
	"math"
)

// ScoreResult is the complete output of one scoring variant.
// Immutable once computed.
type ScoreResult struct {
	Score      float64            `json:"score"`
	Scale      float64            `json:"scale"` // maximum of the score range (100 or 10)
	Grade      string             `json:"grade"` // A, B, C, D, F
	Rating     string             `json:"rating"`
	Components map[string]float64 `json:"components"`
}

// Recommendation is a rule-generated improvement suggestion attached to the
// equity variants. It is produced by fixed thresholds on the inputs, never by
// the numeric scorers themselves.
type Recommendation struct {
	Priority       string `json:"priority"` // High, Medium, Standard
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Rationale      string `json:"rationale"`
}

// InvalidInputError reports a caller-supplied value that violates a
// documented domain constraint. The engine rejects such inputs rather than
// silently coercing them; clamping happens only at sub-score boundaries.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%g: %s", e.Field, e.Value, e.Reason)
}

// InsufficientDataError reports that an input set is too small or too sparse
// for the requested computation to be meaningful. Callers may fall back to
// the documented neutral value instead of failing the whole analysis.
type InsufficientDataError struct {
	Op     string
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: %s", e.Op, e.Reason)
}

// EquityGrade maps a regional equity score to its letter grade and rating.
func EquityGrade(score float64) (grade, rating string) {
	switch {
	case score >= 85:
		return "A", "Excellent"
	case score >= 70:
		return "B", "Good"
	case score >= 55:
		return "C", "Fair"
	case score >= 40:
		return "D", "Poor"
	default:
		return "F", "Critical"
	}
}

// GlobalEquityGrade maps a global equity score to its letter grade and
// rating. The boundaries sit lower than the regional table because the
// country-adaptive benchmarks are already tier-adjusted.
func GlobalEquityGrade(score float64) (grade, rating string) {
	switch {
	case score >= 80:
		return "A", "Excellent"
	case score >= 65:
		return "B", "Good"
	case score >= 50:
		return "C", "Fair"
	case score >= 35:
		return "D", "Poor"
	default:
		return "F", "Critical"
	}
}

// ConvenienceGrade maps a 0-10 convenience score to its letter grade.
func ConvenienceGrade(score float64) string {
	switch {
	case score >= 8.5:
		return "A"
	case score >= 7.0:
		return "B"
	case score >= 5.0:
		return "C"
	case score >= 3.0:
		return "D"
	default:
		return "F"
	}
}

// round1 rounds to one decimal place, matching report precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
