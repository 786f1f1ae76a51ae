package main

import (
	"github.com/spf13/cobra"

	"github.com/chargescope/chargescope/internal/store"
)

func newAccessCmd() *cobra.Command {
	var flags locationFlags

	cmd := &cobra.Command{
		Use:   "access",
		Short: "Score station convenience from nearby amenities",
		Long: `Samples stations in the area, counts amenities around each one, and
scores per-station and aggregate charging convenience.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), store.KindAccessibility, &flags, nil)
		},
	}

	addLocationFlags(cmd, &flags)

	return cmd
}
