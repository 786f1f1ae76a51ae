// Package config handles loading and managing ChargeScope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chargescope/chargescope/pkg/scoring"
)

// Config is the top-level configuration for ChargeScope.
type Config struct {
	Location  LocationConfig  `yaml:"location"`
	Providers ProvidersConfig `yaml:"providers"`
	Cache     CacheConfig     `yaml:"cache"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
}

// LocationConfig is the default analysis target when none is given.
type LocationConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	RadiusKM  float64 `yaml:"radius_km"`
}

// ProviderConfig configures one external data source.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // seconds
}

// ProvidersConfig holds the settings for all external data sources.
type ProvidersConfig struct {
	OpenChargeMap ProviderConfig `yaml:"openchargemap"`
	Census        ProviderConfig `yaml:"census"`
	WorldBank     ProviderConfig `yaml:"worldbank"`
	Overpass      ProviderConfig `yaml:"overpass"`
	OpenMeteo     ProviderConfig `yaml:"openmeteo"`
	Groq          ProviderConfig `yaml:"groq"`
}

// CacheConfig controls the in-process provider response cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
	MaxEntries int `yaml:"max_entries"`
}

// ScoringConfig controls scoring behavior. Weight overrides are partial:
// unset components keep their defaults.
type ScoringConfig struct {
	EquityWeights map[string]float64 `yaml:"equity_weights"`
	GlobalWeights map[string]float64 `yaml:"global_weights"`
	POISampleSize int                `yaml:"poi_sample_size"`
}

// ServerConfig configures the daemon's HTTP listener.
type ServerConfig struct {
	Port   string `yaml:"port"`
	APIKey string `yaml:"api_key"` // empty disables auth
}

// DatabaseConfig configures the Postgres connection.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig selects where report blobs are persisted.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3, gcs
	LocalPath string `yaml:"local_path"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Region  string `yaml:"s3_region"`
	GCSBucket string `yaml:"gcs_bucket"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Location: LocationConfig{
			Name:      "San Francisco, CA",
			Latitude:  37.7749,
			Longitude: -122.4194,
			RadiusKM:  10,
		},
		Providers: ProvidersConfig{
			OpenChargeMap: ProviderConfig{BaseURL: "https://api.openchargemap.io/v3", Timeout: 30},
			Census:        ProviderConfig{BaseURL: "https://api.census.gov/data", Timeout: 30},
			WorldBank:     ProviderConfig{BaseURL: "https://api.worldbank.org/v2", Timeout: 30},
			Overpass:      ProviderConfig{BaseURL: "https://overpass-api.de/api/interpreter", Timeout: 60},
			OpenMeteo:     ProviderConfig{BaseURL: "https://api.open-meteo.com/v1", Timeout: 30},
			Groq:          ProviderConfig{BaseURL: "https://api.groq.com/openai/v1", Timeout: 60},
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
			MaxEntries: 256,
		},
		Scoring: ScoringConfig{
			EquityWeights: map[string]float64{},
			GlobalWeights: map[string]float64{},
			POISampleSize: 10,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/chargescope?sslmode=disable",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: filepath.Join(DataDir(), "reports"),
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .chargescope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".chargescope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DataDir returns the local data directory (~/.cache/chargescope).
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "chargescope")
}

// StationDir returns the station-set snapshot directory.
func StationDir() string {
	return filepath.Join(DataDir(), "stations")
}

// ReportDir returns the generated-report directory.
func ReportDir() string {
	return filepath.Join(DataDir(), "reports")
}

// EquityWeights returns the regional equity weights with any configured
// overrides applied on top of the defaults.
func (c *Config) EquityWeights() scoring.EquityWeights {
	w := scoring.DefaultEquityWeights()
	for key, v := range c.Scoring.EquityWeights {
		switch key {
		case "access":
			w.Access = v
		case "affordability":
			w.Affordability = v
		case "mobility":
			w.Mobility = v
		case "income_alignment":
			w.IncomeAlignment = v
		}
	}
	return w
}

// GlobalWeights returns the global equity weights with any configured
// overrides applied on top of the defaults.
func (c *Config) GlobalWeights() scoring.GlobalWeights {
	w := scoring.DefaultGlobalWeights()
	for key, v := range c.Scoring.GlobalWeights {
		switch key {
		case "access":
			w.Access = v
		case "economic_readiness":
			w.EconomicReadiness = v
		case "affordability":
			w.Affordability = v
		case "infrastructure_readiness":
			w.InfrastructureReadiness = v
		}
	}
	return w
}
