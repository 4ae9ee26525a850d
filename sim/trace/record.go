// Package trace provides the per-reference step records produced by a page
// replacement simulation and aggregate statistics over them.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Step captures the outcome of servicing one reference-string position.
// Frames is the resident set by slot index after the reference was serviced.
type Step struct {
	Page   int   `json:"page" yaml:"page"`
	Step   int   `json:"step" yaml:"step"`
	Frames []int `json:"frames" yaml:"frames"`
	Fault  bool  `json:"fault" yaml:"fault"`
}
