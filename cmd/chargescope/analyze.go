package main

import (
	"github.com/spf13/cobra"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/store"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		flags        locationFlags
		forecastDays int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Survey charging infrastructure around a location",
		Long: `Fetches stations around the search center and reports inventory,
charging levels, coverage, operator concentration, gaps, and weather
range impact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), store.KindInfrastructure, &flags, func(req *analysis.Request) error {
				req.ForecastDays = forecastDays
				return nil
			})
		},
	}

	addLocationFlags(cmd, &flags)
	cmd.Flags().IntVar(&forecastDays, "forecast-days", 0, "Days of range-impact forecast (default 7)")

	return cmd
}
