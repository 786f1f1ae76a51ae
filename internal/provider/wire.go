package provider

import (
	"log/slog"
	"os"
	"time"

	"github.com/chargescope/chargescope/pkg/config"
)

// FromConfig wires the live provider clients from configuration. API keys
// fall back to the environment (OCM_API_KEY, CENSUS_API_KEY, GROQ_API_KEY).
// Sources that need a key and have none are left unset, so dependent report
// sections are omitted rather than failing.
func FromConfig(cfg *config.Config, logger *slog.Logger) Directory {
	p := cfg.Providers

	d := Directory{
		Stations: NewOpenChargeMapClient(
			p.OpenChargeMap.BaseURL,
			keyFor(p.OpenChargeMap, "OCM_API_KEY"),
			timeoutFor(p.OpenChargeMap), logger),
		Countries: NewWorldBankClient(p.WorldBank.BaseURL, timeoutFor(p.WorldBank), logger),
		POIs:      NewOverpassClient(p.Overpass.BaseURL, timeoutFor(p.Overpass), logger),
		Weather:   NewOpenMeteoClient(p.OpenMeteo.BaseURL, timeoutFor(p.OpenMeteo), logger),
	}

	if key := keyFor(p.Census, "CENSUS_API_KEY"); key != "" {
		d.Regions = NewCensusClient(p.Census.BaseURL, key, timeoutFor(p.Census), logger)
	}
	if key := keyFor(p.Groq, "GROQ_API_KEY"); key != "" {
		d.Narrative = NewGroqClient(p.Groq.BaseURL, key, "", timeoutFor(p.Groq), logger)
	}

	return d
}

func keyFor(p config.ProviderConfig, envVar string) string {
	if p.APIKey != "" {
		return p.APIKey
	}
	return os.Getenv(envVar)
}

func timeoutFor(p config.ProviderConfig) time.Duration {
	if p.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.Timeout) * time.Second
}
