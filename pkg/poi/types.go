// Package poi defines the point-of-interest records used by the convenience
// scorer: categorized amenity counts and transit stops around a station.
package poi

// Category classifies an amenity for convenience scoring.
type Category string

const (
	Dining        Category = "dining"
	Shopping      Category = "shopping"
	Services      Category = "services"
	Transit       Category = "transit"
	Healthcare    Category = "healthcare"
	Entertainment Category = "entertainment"
	Other         Category = "other"
)

// Categories lists the scored categories in display order.
func Categories() []Category {
	return []Category{Dining, Shopping, Services, Transit, Healthcare, Entertainment}
}

// Place is a single point of interest near a station.
type Place struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Category  Category `json:"category"`
	Kind      string   `json:"kind,omitempty"` // raw amenity/shop tag value
}

// TransitStop is a public-transport stop near a station.
type TransitStop struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      string  `json:"type"` // bus_stop, train_station, subway, tram
	Operator  string  `json:"operator,omitempty"`
}

// Bundle holds categorized POI counts for a search radius around one point.
type Bundle struct {
	Counts  map[Category]int `json:"counts"`
	Places  []Place          `json:"places,omitempty"`
	Transit []TransitStop    `json:"transit,omitempty"`
	RadiusM int              `json:"radius_m"`
}

// Count returns the POI count for a category, zero when absent.
func (b *Bundle) Count(c Category) int {
	if b == nil || b.Counts == nil {
		return 0
	}
	return b.Counts[c]
}

// TransitTypes tallies transit stops by type.
func (b *Bundle) TransitTypes() map[string]int {
	counts := make(map[string]int)
	for _, stop := range b.Transit {
		t := stop.Type
		if t == "" {
			t = "unknown"
		}
		counts[t]++
	}
	return counts
}
