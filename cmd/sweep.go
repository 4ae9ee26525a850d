package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oslabx/pagesim/sim"
)

var (
	sweepPolicies []string
	minFrames     int
	maxFrames     int
)

// --- pagesim sweep ---

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep frame counts and report Belady's anomaly",
	Run: func(cmd *cobra.Command, args []string) {
		opts := currentInputOptions()
		opts.Policies = sweepPolicies
		in, err := resolveInput(opts, changedInputFlags(cmd, "policies"))
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		lo, hi := minFrames, maxFrames
		if in.Sweep != nil {
			if !cmd.Flags().Changed("min-frames") {
				lo = in.Sweep.MinFrames
			}
			if !cmd.Flags().Changed("max-frames") {
				hi = in.Sweep.MaxFrames
			}
		}

		reports, err := runSweeps(in.Policies, in.Refs, lo, hi)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		if err := writeSweep(cmd.OutOrStdout(), outputFormat, reports); err != nil {
			logrus.Fatalf("Writing output failed: %v", err)
		}
	},
}

// runSweeps sweeps each policy over [lo, hi] frames.
func runSweeps(policies []sim.Policy, refs []int, lo, hi int) ([]sweepReport, error) {
	reports := make([]sweepReport, 0, len(policies))
	for _, p := range policies {
		points, err := sim.SweepCapacity(p, refs, lo, hi)
		if err != nil {
			return nil, err
		}
		anomalies := sim.FindBeladyAnomalies(points)
		if len(anomalies) > 0 {
			logrus.Infof("%s shows Belady's anomaly at %d point(s)", p, len(anomalies))
		}
		reports = append(reports, sweepReport{Policy: p, Points: points, Anomalies: anomalies})
	}
	return reports, nil
}

func init() {
	sweepCmd.Flags().StringSliceVar(&sweepPolicies, "policies", []string{string(sim.FIFO)}, "Policies to sweep")
	sweepCmd.Flags().IntVar(&minFrames, "min-frames", 1, "Smallest frame count")
	sweepCmd.Flags().IntVar(&maxFrames, "max-frames", 6, "Largest frame count")
	rootCmd.AddCommand(sweepCmd)
}
