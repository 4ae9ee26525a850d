package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oslabx/pagesim/sim"
	"github.com/oslabx/pagesim/sim/trace"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var validFormats = map[string]bool{formatText: true, formatJSON: true, formatYAML: true}

// runReport is the serialized form of a single-policy run.
type runReport struct {
	Policy     sim.Policy    `json:"policy" yaml:"policy"`
	Frames     int           `json:"frames" yaml:"frames"`
	References []int         `json:"references" yaml:"references,flow"`
	Steps      []trace.Step  `json:"steps" yaml:"steps"`
	Summary    trace.Summary `json:"summary" yaml:"summary"`
}

// compareReport is the serialized form of a multi-policy comparison.
type compareReport struct {
	Frames     int                `json:"frames" yaml:"frames"`
	References []int              `json:"references" yaml:"references,flow"`
	Results    []sim.PolicyResult `json:"results" yaml:"results"`
}

// sweepReport is the serialized form of a capacity sweep for one policy.
type sweepReport struct {
	Policy    sim.Policy          `json:"policy" yaml:"policy"`
	Points    []sim.SweepPoint    `json:"points" yaml:"points"`
	Anomalies []sim.BeladyAnomaly `json:"anomalies" yaml:"anomalies"`
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q; valid: text, json, yaml", format)
	}
}

func formatFrames(frames []int, capacity int) string {
	cells := make([]string, capacity)
	for i := range cells {
		if i < len(frames) {
			cells[i] = fmt.Sprintf("%d", frames[i])
		} else {
			cells[i] = "-"
		}
	}
	return "[" + strings.Join(cells, " ") + "]"
}

// writeRun renders one policy's trace.
func writeRun(w io.Writer, format string, r runReport) error {
	if format != formatText {
		return writeStructured(w, format, r)
	}
	fmt.Fprintf(w, "=== %s (%d frames) ===\n", strings.ToUpper(string(r.Policy)), r.Frames)
	fmt.Fprintf(w, "%-6s %-6s %-*s %s\n", "Step", "Page", 2*r.Frames+2, "Frames", "Result")
	for _, s := range r.Steps {
		result := "hit"
		if s.Fault {
			result = "FAULT"
		}
		fmt.Fprintf(w, "%-6d %-6d %-*s %s\n", s.Step, s.Page, 2*r.Frames+2, formatFrames(s.Frames, r.Frames), result)
	}
	writeSummaryLine(w, r.Summary)
	return nil
}

func writeSummaryLine(w io.Writer, s trace.Summary) {
	fmt.Fprintf(w, "Faults: %d/%d  Hits: %d  Evictions: %d  Fault rate: %.2f%%  Hit ratio: %.2f%%\n",
		s.Faults, s.TotalReferences, s.Hits, s.Evictions, 100*s.FaultRate, 100*s.HitRatio)
}

// writeCompare renders a side-by-side fault table for several policies.
func writeCompare(w io.Writer, format string, r compareReport) error {
	if format != formatText {
		return writeStructured(w, format, r)
	}
	fmt.Fprintf(w, "=== Policy comparison (%d frames, %d references) ===\n", r.Frames, len(r.References))
	fmt.Fprintf(w, "%-8s %7s %5s %10s %10s\n", "Policy", "Faults", "Hits", "Fault rate", "Hit ratio")
	best := -1
	for i, res := range r.Results {
		s := res.Summary
		fmt.Fprintf(w, "%-8s %7d %5d %9.2f%% %9.2f%%\n", res.Policy, s.Faults, s.Hits, 100*s.FaultRate, 100*s.HitRatio)
		if best < 0 || s.Faults < r.Results[best].Summary.Faults {
			best = i
		}
	}
	if best >= 0 {
		fmt.Fprintf(w, "Fewest faults: %s\n", r.Results[best].Policy)
	}
	return nil
}

// writeSweep renders fault counts per capacity and any Belady anomalies.
func writeSweep(w io.Writer, format string, reports []sweepReport) error {
	if format != formatText {
		return writeStructured(w, format, reports)
	}
	for _, r := range reports {
		fmt.Fprintf(w, "=== %s capacity sweep ===\n", strings.ToUpper(string(r.Policy)))
		fmt.Fprintf(w, "%-8s %s\n", "Frames", "Faults")
		for _, p := range r.Points {
			fmt.Fprintf(w, "%-8d %d\n", p.Capacity, p.Faults)
		}
		if len(r.Anomalies) == 0 {
			fmt.Fprintln(w, "No Belady's anomaly.")
			continue
		}
		for _, a := range r.Anomalies {
			fmt.Fprintf(w, "Belady's anomaly: %d → %d frames raised faults %d → %d\n",
				a.FromCapacity, a.ToCapacity, a.FromFaults, a.ToFaults)
		}
	}
	return nil
}
