package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oslabx/pagesim/sim"
)

var comparePolicies []string

// --- pagesim compare ---

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run several policies on the same reference string and compare fault counts",
	Run: func(cmd *cobra.Command, args []string) {
		opts := currentInputOptions()
		opts.Policies = comparePolicies
		in, err := resolveInput(opts, changedInputFlags(cmd, "policies"))
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		results, err := sim.Compare(in.Refs, in.Frames, in.Policies...)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		report := compareReport{Frames: in.Frames, References: in.Refs, Results: results}
		if err := writeCompare(cmd.OutOrStdout(), outputFormat, report); err != nil {
			logrus.Fatalf("Writing output failed: %v", err)
		}
	},
}

func init() {
	compareCmd.Flags().StringSliceVar(&comparePolicies, "policies", nil, "Policies to compare (default: all)")
	rootCmd.AddCommand(compareCmd)
}
