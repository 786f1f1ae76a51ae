// Package charging defines the core charging-infrastructure data model for
// ChargeScope. These types are the shared vocabulary across all modules.
package charging

import (
	"sort"
	"time"
)

// Station represents a single public charging site.
// Stations are immutable once parsed from a provider payload.
type Station struct {
	ID          int64       `json:"id"`
	UUID        string      `json:"uuid,omitempty"`
	Name        string      `json:"name"`
	Operator    Operator    `json:"operator"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Address     Address     `json:"address"`
	Connectors  []Connector `json:"connectors"`
	NumPoints   int         `json:"num_points"` // physical charge points at the site
	Operational bool        `json:"operational"`
	Public      bool        `json:"public"`
	VerifiedAt  time.Time   `json:"verified_at,omitempty"`
}

// Operator identifies the network operating a station.
type Operator struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private,omitempty"`
}

// Address holds the human-readable location of a station.
type Address struct {
	Line1    string `json:"line1,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Connector represents one connector type offered at a station.
type Connector struct {
	Type         string  `json:"type"`
	Level        string  `json:"level,omitempty"`
	PowerKW      float64 `json:"power_kw"`
	Quantity     int     `json:"quantity"`
	IsFastCharge bool    `json:"is_fast_charge"`
}

// TotalPowerKW sums the rated power over all connectors at the station.
func (s *Station) TotalPowerKW() float64 {
	var total float64
	for _, c := range s.Connectors {
		total += c.PowerKW
	}
	return total
}

// StationSet is an ordered collection of stations returned by one search.
// Derived counts are computed on demand, never stored.
type StationSet struct {
	Stations   []Station `json:"stations"`
	CenterLat  float64   `json:"center_lat"`
	CenterLon  float64   `json:"center_lon"`
	RadiusKM   float64   `json:"radius_km"`
	FetchedAt  time.Time `json:"fetched_at,omitempty"`
}

// SetStats holds summary statistics derived from a StationSet.
type SetStats struct {
	StationCount    int        `json:"station_count"`
	TotalConnectors int        `json:"total_connectors"`
	FastChargers    int        `json:"fast_chargers"`
	Operational     int        `json:"operational"`
	PublicAccess    int        `json:"public_access"`
	UniqueOperators int        `json:"unique_operators"`
	Power           PowerStats `json:"power"`
}

// PowerStats summarizes per-station total power across a set.
type PowerStats struct {
	MinKW float64 `json:"min_kw"`
	MaxKW float64 `json:"max_kw"`
	AvgKW float64 `json:"avg_kw"`
}

// Stats computes summary statistics for the set.
func (ss *StationSet) Stats() SetStats {
	stats := SetStats{StationCount: len(ss.Stations)}

	ops := make(map[string]bool)
	var powerSum float64
	var powerCount int

	for i := range ss.Stations {
		st := &ss.Stations[i]
		for _, c := range st.Connectors {
			qty := c.Quantity
			if qty <= 0 {
				qty = 1
			}
			stats.TotalConnectors += qty
			if c.IsFastCharge {
				stats.FastChargers += qty
			}
		}
		if st.Operational {
			stats.Operational++
		}
		if st.Public {
			stats.PublicAccess++
		}
		ops[st.Operator.Name] = true

		if p := st.TotalPowerKW(); p > 0 {
			if powerCount == 0 || p < stats.Power.MinKW {
				stats.Power.MinKW = p
			}
			if p > stats.Power.MaxKW {
				stats.Power.MaxKW = p
			}
			powerSum += p
			powerCount++
		}
	}

	stats.UniqueOperators = len(ops)
	if powerCount > 0 {
		stats.Power.AvgKW = powerSum / float64(powerCount)
	}
	return stats
}

// OperatorCount pairs an operator name with its station and connector totals.
type OperatorCount struct {
	Name       string `json:"name"`
	Stations   int    `json:"stations"`
	Connectors int    `json:"connectors"`
}

// OperatorCounts aggregates stations per operator, sorted by station count
// descending with ties broken by name so the ordering is deterministic.
func (ss *StationSet) OperatorCounts() []OperatorCount {
	byName := make(map[string]*OperatorCount)
	var order []string

	for i := range ss.Stations {
		st := &ss.Stations[i]
		name := st.Operator.Name
		if name == "" {
			name = "Unknown"
		}
		oc, ok := byName[name]
		if !ok {
			oc = &OperatorCount{Name: name}
			byName[name] = oc
			order = append(order, name)
		}
		oc.Stations++
		for _, c := range st.Connectors {
			qty := c.Quantity
			if qty <= 0 {
				qty = 1
			}
			oc.Connectors += qty
		}
	}

	counts := make([]OperatorCount, 0, len(order))
	for _, name := range order {
		counts = append(counts, *byName[name])
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Stations != counts[j].Stations {
			return counts[i].Stations > counts[j].Stations
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}
