package cmd

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oslabx/pagesim/sim"
)

//go:embed presets.yaml
var presetsYAML []byte

// PresetConfig represents the full presets.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetConfig struct {
	Version   string                  `yaml:"version"`
	Scenarios map[string]sim.Scenario `yaml:"scenarios"`
}

// loadPresetConfig parses preset YAML with strict field checking.
func loadPresetConfig(data []byte) (*PresetConfig, error) {
	var cfg PresetConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	return &cfg, nil
}

// lookupPreset returns a copy of the named built-in scenario.
func lookupPreset(name string) (*sim.Scenario, error) {
	cfg, err := loadPresetConfig(presetsYAML)
	if err != nil {
		return nil, err
	}
	sc, ok := cfg.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q; available: %v", name, presetNames(cfg))
	}
	return &sc, nil
}

// presetNames lists preset names in sorted order.
func presetNames(cfg *PresetConfig) []string {
	names := make([]string, 0, len(cfg.Scenarios))
	for name := range cfg.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- pagesim presets ---

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in scenarios usable with --preset",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadPresetConfig(presetsYAML)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, name := range presetNames(cfg) {
			sc := cfg.Scenarios[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s frames=%d\n", name, sc.Frames)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
