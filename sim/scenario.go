package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a page replacement run, loadable from a YAML file.
// Exactly one of References, ReferenceString or Generate supplies the reference string.
type Scenario struct {
	Name            string        `yaml:"name"`
	Frames          int           `yaml:"frames"`
	Policies        []string      `yaml:"policies,omitempty"` // empty = all policies
	References      []int         `yaml:"references,omitempty"`
	ReferenceString string        `yaml:"reference_string,omitempty"`
	Generate        *GenerateSpec `yaml:"generate,omitempty"`
	Sweep           *SweepSpec    `yaml:"sweep,omitempty"`
}

// GenerateSpec configures a seeded random reference string.
type GenerateSpec struct {
	Length  int   `yaml:"length"`
	MaxPage int   `yaml:"max_page"`
	Seed    int64 `yaml:"seed"`
}

// SweepSpec configures a capacity sweep.
type SweepSpec struct {
	MinFrames int `yaml:"min_frames"`
	MaxFrames int `yaml:"max_frames"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks frame counts, policy names and reference sources.
func (sc *Scenario) Validate() error {
	if sc.Frames < 1 {
		return fmt.Errorf("%w: frames must be >= 1, got %d", ErrInvalidCapacity, sc.Frames)
	}
	for _, p := range sc.Policies {
		if _, err := ParsePolicy(p); err != nil {
			return err
		}
	}

	sources := 0
	if len(sc.References) > 0 {
		sources++
	}
	if sc.ReferenceString != "" {
		sources++
	}
	if sc.Generate != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("only one of references, reference_string or generate may be set")
	}
	for i, p := range sc.References {
		if p < 0 {
			return fmt.Errorf("%w: references[%d] = %d is negative", ErrInvalidPage, i, p)
		}
	}
	if sc.Generate != nil {
		if sc.Generate.Length < 0 {
			return fmt.Errorf("generate.length must be non-negative, got %d", sc.Generate.Length)
		}
		if sc.Generate.MaxPage < 0 || sc.Generate.MaxPage == math.MaxInt {
			return fmt.Errorf("%w: generate.max_page %d is out of range", ErrInvalidPage, sc.Generate.MaxPage)
		}
	}
	if sc.Sweep != nil {
		if sc.Sweep.MinFrames < 1 {
			return fmt.Errorf("%w: sweep.min_frames must be >= 1, got %d", ErrInvalidCapacity, sc.Sweep.MinFrames)
		}
		if sc.Sweep.MaxFrames < sc.Sweep.MinFrames {
			return fmt.Errorf("%w: sweep.max_frames %d is below min_frames %d",
				ErrInvalidCapacity, sc.Sweep.MaxFrames, sc.Sweep.MinFrames)
		}
	}
	return nil
}

// ResolveReferences returns the scenario's reference string.
// A scenario with no source yields an empty reference string.
func (sc *Scenario) ResolveReferences() ([]int, error) {
	switch {
	case len(sc.References) > 0:
		out := make([]int, len(sc.References))
		copy(out, sc.References)
		return out, nil
	case sc.ReferenceString != "":
		return ParseReferenceString(sc.ReferenceString)
	case sc.Generate != nil:
		return NewReferenceGenerator(sc.Generate.Seed).Generate(sc.Generate.Length, sc.Generate.MaxPage)
	default:
		return []int{}, nil
	}
}

// ResolvePolicies returns the scenario's policies, or AllPolicies() when none are listed.
func (sc *Scenario) ResolvePolicies() ([]Policy, error) {
	if len(sc.Policies) == 0 {
		return AllPolicies(), nil
	}
	out := make([]Policy, 0, len(sc.Policies))
	for _, name := range sc.Policies {
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
