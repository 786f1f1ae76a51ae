package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chargescope/chargescope/internal/analysis"
	"github.com/chargescope/chargescope/internal/store"
)

func newEquityCmd() *cobra.Command {
	var (
		flags      locationFlags
		stateFIPS  string
		countyFIPS string
	)

	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Score US county-level charging equity",
		Long: `Joins station coverage with Census county demographics and scores
charging equity across access, affordability, mobility, and income
alignment. Degrades to an infrastructure-only report when demographic
data is unavailable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), store.KindRegionalEquity, &flags, func(req *analysis.Request) error {
				if stateFIPS == "" || countyFIPS == "" {
					return fmt.Errorf("--state-fips and --county-fips are required")
				}
				req.StateFIPS = stateFIPS
				req.CountyFIPS = countyFIPS
				return nil
			})
		},
	}

	addLocationFlags(cmd, &flags)
	cmd.Flags().StringVar(&stateFIPS, "state-fips", "", "Two-digit state FIPS code (required)")
	cmd.Flags().StringVar(&countyFIPS, "county-fips", "", "Three-digit county FIPS code (required)")
	_ = cmd.MarkFlagRequired("state-fips")
	_ = cmd.MarkFlagRequired("county-fips")

	return cmd
}
