package scoring

// EquityWeights holds the component weights for the regional equity
// composite. Weights must sum to 1.0.
type EquityWeights struct {
	Access          float64 `yaml:"access" json:"access"`
	Affordability   float64 `yaml:"affordability" json:"affordability"`
	Mobility        float64 `yaml:"mobility" json:"mobility"`
	IncomeAlignment float64 `yaml:"income_alignment" json:"income_alignment"`
}

// Sum returns the total of all weights.
func (w EquityWeights) Sum() float64 {
	return w.Access + w.Affordability + w.Mobility + w.IncomeAlignment
}

// GlobalWeights holds the component weights for the country-adaptive equity
// composite. Weights must sum to 1.0.
type GlobalWeights struct {
	Access                  float64 `yaml:"access" json:"access"`
	EconomicReadiness       float64 `yaml:"economic_readiness" json:"economic_readiness"`
	Affordability           float64 `yaml:"affordability" json:"affordability"`
	InfrastructureReadiness float64 `yaml:"infrastructure_readiness" json:"infrastructure_readiness"`
}

// Sum returns the total of all weights.
func (w GlobalWeights) Sum() float64 {
	return w.Access + w.EconomicReadiness + w.Affordability + w.InfrastructureReadiness
}

// DefaultEquityWeights returns the standard regional equity weights.
func DefaultEquityWeights() EquityWeights {
	return EquityWeights{
		Access:          0.35,
		Affordability:   0.25,
		Mobility:        0.20,
		IncomeAlignment: 0.20,
	}
}

// DefaultGlobalWeights returns the standard global equity weights.
func DefaultGlobalWeights() GlobalWeights {
	return GlobalWeights{
		Access:                  0.35,
		EconomicReadiness:       0.25,
		Affordability:           0.20,
		InfrastructureReadiness: 0.20,
	}
}

// NationalMedianIncome is the fixed US reference income the income-alignment
// component compares against.
const NationalMedianIncome = 75000.0

// Station-density benchmarks (stations per square km) by country income
// tier, used by the global access component.
const (
	BenchmarkHighIncome   = 0.5
	BenchmarkMiddleIncome = 0.2
	BenchmarkLowIncome    = 0.05
)
