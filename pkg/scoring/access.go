package scoring

import (
	"fmt"
	"strings"
)

// AccessAssessment combines the raw station rate with socioeconomic need to
// produce a deployment priority. Unlike the numeric scorers this is a
// categorical assessment used directly in reports.
type AccessAssessment struct {
	StationsPer1000 float64 `json:"stations_per_1000"`
	AccessLevel     string  `json:"access_level"`
	AccessAdequate  bool    `json:"access_adequate"`
	NeedLevel       string  `json:"need_level"`
	Priority        string  `json:"priority"`
	PriorityScore   int     `json:"priority_score"`
	Description     string  `json:"description"`
}

// AssessAccess evaluates charging access adequacy against community need.
// Inadequate access in a high-need community is the most urgent combination.
func AssessAccess(stationCount int, population int64, povertyRate float64) AccessAssessment {
	per1000 := StationsPer1000(stationCount, population)

	var level string
	var adequate bool
	switch {
	case per1000 >= 0.8:
		level, adequate = "High", true
	case per1000 >= 0.4:
		level, adequate = "Moderate", true
	case per1000 >= 0.1:
		level, adequate = "Limited", false
	default:
		level, adequate = "Very Limited", false
	}

	var need string
	switch {
	case povertyRate >= 20:
		need = "Critical"
	case povertyRate >= 15:
		need = "High"
	case povertyRate >= 10:
		need = "Moderate"
	default:
		need = "Standard"
	}

	highNeed := need == "Critical" || need == "High"
	var priority string
	var priorityScore int
	switch {
	case !adequate && highNeed:
		priority, priorityScore = "Urgent", 5
	case !adequate:
		priority, priorityScore = "High", 4
	case highNeed:
		priority, priorityScore = "Moderate", 3
	default:
		priority, priorityScore = "Standard", 2
	}

	return AccessAssessment{
		StationsPer1000: per1000,
		AccessLevel:     level,
		AccessAdequate:  adequate,
		NeedLevel:       need,
		Priority:        priority,
		PriorityScore:   priorityScore,
		Description:     fmt.Sprintf("%s access with %s community need", level, strings.ToLower(need)),
	}
}
