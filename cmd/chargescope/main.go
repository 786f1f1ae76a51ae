// Package main provides the chargescope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chargescope",
		Short: "EV charging infrastructure analytics",
		Long: `ChargeScope aggregates charging stations, demographics, amenities, and
weather into scored reports on infrastructure health and charging equity.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newEquityCmd(),
		newGlobalCmd(),
		newAccessCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
