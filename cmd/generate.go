package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oslabx/pagesim/sim"
)

var (
	genSeed    int64
	genLength  int
	genMaxPage int
	genCount   int
)

// --- pagesim generate ---

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print seeded random reference strings",
	Long:  "Print seeded random reference strings, one per line, in the form accepted by --refs.",
	Run: func(cmd *cobra.Command, args []string) {
		if genCount < 1 {
			logrus.Fatalf("--count must be >= 1, got %d", genCount)
		}
		gen := sim.NewReferenceGenerator(genSeed)
		for i := 0; i < genCount; i++ {
			refs, err := gen.Generate(genLength, genMaxPage)
			if err != nil {
				logrus.Fatalf("Generation failed: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), sim.FormatReferenceString(refs))
		}
	},
}

func init() {
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for random generation")
	generateCmd.Flags().IntVar(&genLength, "length", sim.DefaultReferenceLength, "References per string")
	generateCmd.Flags().IntVar(&genMaxPage, "max-page", sim.DefaultMaxPage, "Largest page identifier")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "Number of strings to print")
	rootCmd.AddCommand(generateCmd)
}
