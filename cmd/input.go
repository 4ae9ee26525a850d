package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oslabx/pagesim/sim"
)

// inputOptions gathers the flags shared by run, compare and sweep.
type inputOptions struct {
	ScenarioPath string
	Preset       string
	Refs         string
	Frames       int
	Policies     []string
	Seed         int64
	Length       int
	MaxPage      int
}

// changedFlags records which flags the user set explicitly.
// Set flags override the matching scenario fields.
type changedFlags struct {
	Frames   bool
	Policies bool
	Seed     bool
	Length   bool
	MaxPage  bool
}

// simInput is a fully resolved simulation request.
type simInput struct {
	Name     string
	Refs     []int
	Frames   int
	Policies []sim.Policy
	Sweep    *sim.SweepSpec
}

// loadBaseScenario returns the scenario named by --scenario or --preset, or nil.
func loadBaseScenario(opts inputOptions) (*sim.Scenario, error) {
	switch {
	case opts.ScenarioPath != "" && opts.Preset != "":
		return nil, fmt.Errorf("--scenario and --preset are mutually exclusive")
	case opts.ScenarioPath != "":
		sc, err := sim.LoadScenario(opts.ScenarioPath)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded scenario %q from %s", sc.Name, opts.ScenarioPath)
		return sc, nil
	case opts.Preset != "":
		return lookupPreset(opts.Preset)
	default:
		return nil, nil
	}
}

// resolveInput builds a simInput from a scenario (file or preset) or from flags.
// Explicitly set flags override scenario fields. A scenario that lists no
// policies falls back to opts.Policies. With neither a scenario nor --refs, a
// seeded random reference string is generated.
func resolveInput(opts inputOptions, set changedFlags) (*simInput, error) {
	sc, err := loadBaseScenario(opts)
	if err != nil {
		return nil, err
	}
	fromScenario := sc != nil
	if !fromScenario {
		sc = &sim.Scenario{Frames: opts.Frames}
	} else if set.Frames {
		sc.Frames = opts.Frames
	}
	if !fromScenario || set.Policies || len(sc.Policies) == 0 {
		sc.Policies = opts.Policies
	}
	if opts.Refs != "" {
		sc.References = nil
		sc.Generate = nil
		sc.ReferenceString = opts.Refs
	} else if !fromScenario {
		sc.Generate = &sim.GenerateSpec{Length: opts.Length, MaxPage: opts.MaxPage, Seed: opts.Seed}
	} else if sc.Generate != nil {
		if set.Seed {
			sc.Generate.Seed = opts.Seed
		}
		if set.Length {
			sc.Generate.Length = opts.Length
		}
		if set.MaxPage {
			sc.Generate.MaxPage = opts.MaxPage
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	refs, err := sc.ResolveReferences()
	if err != nil {
		return nil, err
	}
	if sc.Generate != nil {
		logrus.Infof("Generated reference string %s (seed=%d)", sim.FormatReferenceString(refs), sc.Generate.Seed)
	}
	policies, err := sc.ResolvePolicies()
	if err != nil {
		return nil, err
	}
	return &simInput{
		Name:     sc.Name,
		Refs:     refs,
		Frames:   sc.Frames,
		Policies: policies,
		Sweep:    sc.Sweep,
	}, nil
}
