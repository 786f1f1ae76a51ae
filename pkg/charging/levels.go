package charging

// ChargingLevel buckets connectors by rated power.
type ChargingLevel string

const (
	Level1 ChargingLevel = "Level 1 (Slow)"   // < 5 kW
	Level2 ChargingLevel = "Level 2 (Medium)" // 5-22 kW
	Level3 ChargingLevel = "Level 3 (Fast)"   // 22-50 kW
	DCFast ChargingLevel = "DC Fast (Ultra)"  // > 50 kW
)

// LevelCount holds connector totals for one charging level.
type LevelCount struct {
	Level      ChargingLevel `json:"level"`
	PowerRange string        `json:"power_range"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

// LevelDistribution holds the connector breakdown by charging level.
type LevelDistribution struct {
	Levels          []LevelCount `json:"levels"`
	TotalConnectors int          `json:"total_connectors"`
	FastAvailable   bool         `json:"fast_charging_available"`
}

// LevelForPower maps a connector power rating to its charging level.
func LevelForPower(powerKW float64) ChargingLevel {
	switch {
	case powerKW < 5:
		return Level1
	case powerKW < 22:
		return Level2
	case powerKW <= 50:
		return Level3
	default:
		return DCFast
	}
}

// Levels computes the connector distribution across charging levels.
func (ss *StationSet) Levels() LevelDistribution {
	counts := map[ChargingLevel]int{}
	total := 0

	for i := range ss.Stations {
		for _, c := range ss.Stations[i].Connectors {
			qty := c.Quantity
			if qty <= 0 {
				qty = 1
			}
			counts[LevelForPower(c.PowerKW)] += qty
			total += qty
		}
	}

	dist := LevelDistribution{
		Levels: []LevelCount{
			{Level: Level1, PowerRange: "< 5 kW", Count: counts[Level1]},
			{Level: Level2, PowerRange: "5-22 kW", Count: counts[Level2]},
			{Level: Level3, PowerRange: "22-50 kW", Count: counts[Level3]},
			{Level: DCFast, PowerRange: "> 50 kW", Count: counts[DCFast]},
		},
		TotalConnectors: total,
		FastAvailable:   counts[Level3]+counts[DCFast] > 0,
	}

	for i := range dist.Levels {
		if total > 0 {
			dist.Levels[i].Percentage = float64(dist.Levels[i].Count) / float64(total) * 100
		}
	}
	return dist
}
