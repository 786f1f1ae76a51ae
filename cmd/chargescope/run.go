package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/provider"
	"github.com/chargescope/chargescope/pkg/config"
	"github.com/chargescope/chargescope/pkg/surface"
)

// locationFlags are the flags shared by every analysis command.
type locationFlags struct {
	name       string
	lat        float64
	lon        float64
	radius     float64
	maxResults int
	format     string
	narrative  bool
	configPath string
}

func addLocationFlags(cmd *cobra.Command, f *locationFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "Location name for the report header")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Latitude of the search center")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "Longitude of the search center")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "Search radius in km")
	cmd.Flags().IntVar(&f.maxResults, "max-results", 0, "Maximum stations to fetch")
	cmd.Flags().StringVar(&f.format, "output", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&f.narrative, "narrative", false, "Generate an LLM narrative summary")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file (default: find .chargescope/config.yaml)")
}

// request builds an analysis request from the flags, filling location
// defaults from config when the flags were left unset.
func (f *locationFlags) request(cfg *config.Config) analysis.Request {
	req := analysis.Request{
		LocationName:  f.name,
		Latitude:      f.lat,
		Longitude:     f.lon,
		RadiusKM:      f.radius,
		MaxResults:    f.maxResults,
		WithNarrative: f.narrative,
	}
	if req.Latitude == 0 && req.Longitude == 0 {
		req.LocationName = firstNonEmpty(req.LocationName, cfg.Location.Name)
		req.Latitude = cfg.Location.Latitude
		req.Longitude = cfg.Location.Longitude
	}
	if req.RadiusKM == 0 {
		req.RadiusKM = cfg.Location.RadiusKM
	}
	return req
}

func loadConfig(path string) *config.Config {
	if path == "" {
		cwd, err := os.Getwd()
		if err == nil {
			path = config.FindConfigFile(cwd)
		}
	}
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// buildDirectory wires the provider clients from config and wraps them in a
// TTL cache. Client warnings go to stderr so they never mix with rendered
// report output on stdout.
func buildDirectory(cfg *config.Config) provider.Directory {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return provider.NewCachedDirectory(provider.FromConfig(cfg, logger), provider.CacheOptions{
		TTL:        time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
		MaxEntries: cfg.Cache.MaxEntries,
	})
}

// runAnalysis executes one analysis against live providers and renders the
// report. CLI runs persist report blobs locally and skip the database.
// customize adjusts the request after the config defaults are applied.
func runAnalysis(ctx context.Context, kind string, f *locationFlags, customize func(req *analysis.Request) error) error {
	cfg := loadConfig(f.configPath)
	req := f.request(cfg)
	if customize != nil {
		if err := customize(&req); err != nil {
			return err
		}
	}

	svc := analysis.NewService(buildDirectory(cfg), analysis.Options{
		Storage:       analysis.NewLocalStorage(config.DataDir()),
		EquityWeights: cfg.EquityWeights(),
		GlobalWeights: cfg.GlobalWeights(),
		POISampleSize: cfg.Scoring.POISampleSize,
	})

	report, err := svc.Run(ctx, kind, req)
	if err != nil {
		return err
	}

	return surface.ForFormat(f.format).Render(os.Stdout, report)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
