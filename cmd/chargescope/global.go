package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/provider"
	"github.com/chargescope/chargescope/internal/store"
)

func newGlobalCmd() *cobra.Command {
	var (
		flags   locationFlags
		country string
	)

	cmd := &cobra.Command{
		Use:   "global",
		Short: "Score charging equity against country-adaptive benchmarks",
		Long: `Joins station coverage with World Bank country indicators and scores
equity against benchmarks adjusted for the country's income level.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), store.KindGlobalEquity, &flags, func(req *analysis.Request) error {
				code := country
				if len(code) != 3 {
					code = provider.CountryCode(country)
				}
				if code == "" {
					return fmt.Errorf("unknown country %q: pass an ISO alpha-3 code", country)
				}
				req.CountryCode = code
				return nil
			})
		},
	}

	addLocationFlags(cmd, &flags)
	cmd.Flags().StringVar(&country, "country", "", "Country name or ISO alpha-3 code (required)")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}
