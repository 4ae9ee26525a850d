package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oslabx/pagesim/sim"
	"github.com/oslabx/pagesim/sim/trace"
)

var (
	// CLI flags shared by run, compare and sweep
	logLevel     string // Log verbosity level
	scenarioPath string // YAML scenario file
	presetName   string // Built-in scenario name
	refsFlag     string // Reference string, e.g. "7,0,1,2"
	frames       int    // Frame capacity
	outputFormat string // text, json or yaml
	seed         int64  // Seed for generated reference strings
	refLength    int    // Length of generated reference strings
	maxPage      int    // Largest generated page identifier

	// run
	policyName string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Page replacement simulator (FIFO, LRU, Optimal, LFU, MFU)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if !validFormats[outputFormat] {
			logrus.Fatalf("Invalid output format %q; valid: text, json, yaml", outputFormat)
		}
	},
}

// runCmd simulates a single policy and prints its step-by-step trace
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one replacement policy and print its trace",
	Run: func(cmd *cobra.Command, args []string) {
		opts := currentInputOptions()
		opts.Policies = []string{policyName}
		in, err := resolveInput(opts, changedInputFlags(cmd, "policy"))
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if len(in.Policies) > 1 {
			logrus.Warnf("run simulates one policy; using %s (use compare for %v)", in.Policies[0], in.Policies)
		}

		logrus.Infof("Starting %s simulation with %d frames over %d references", in.Policies[0], in.Frames, len(in.Refs))
		steps, err := sim.Simulate(in.Policies[0], in.Refs, in.Frames)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		report := runReport{
			Policy:     in.Policies[0],
			Frames:     in.Frames,
			References: in.Refs,
			Steps:      steps,
			Summary:    trace.Summarize(steps),
		}
		if err := writeRun(cmd.OutOrStdout(), outputFormat, report); err != nil {
			logrus.Fatalf("Writing output failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

func currentInputOptions() inputOptions {
	return inputOptions{
		ScenarioPath: scenarioPath,
		Preset:       presetName,
		Refs:         refsFlag,
		Frames:       frames,
		Seed:         seed,
		Length:       refLength,
		MaxPage:      maxPage,
	}
}

// changedInputFlags reports which shared input flags were set on cmd.
// policyFlag names the command's policy selection flag.
func changedInputFlags(cmd *cobra.Command, policyFlag string) changedFlags {
	f := cmd.Flags()
	return changedFlags{
		Frames:   f.Changed("frames"),
		Policies: f.Changed(policyFlag),
		Seed:     f.Changed("seed"),
		Length:   f.Changed("length"),
		MaxPage:  f.Changed("max-page"),
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatText, "Output format (text, json, yaml)")

	for _, c := range []*cobra.Command{runCmd, compareCmd, sweepCmd} {
		c.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file")
		c.Flags().StringVar(&presetName, "preset", "", "Built-in scenario name (see presets)")
		c.Flags().StringVar(&refsFlag, "refs", "", "Reference string, comma or space separated (random if empty)")
		c.Flags().IntVar(&frames, "frames", 3, "Number of page frames")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for random reference strings")
		c.Flags().IntVar(&refLength, "length", sim.DefaultReferenceLength, "Length of random reference strings")
		c.Flags().IntVar(&maxPage, "max-page", sim.DefaultMaxPage, "Largest page identifier in random reference strings")
	}

	runCmd.Flags().StringVar(&policyName, "policy", string(sim.FIFO), "Replacement policy (fifo, lru, optimal, lfu, mfu)")

	rootCmd.AddCommand(runCmd)
}
