package trace

// Summary aggregates statistics from a sequence of steps.
type Summary struct {
	TotalReferences int     `json:"total_references" yaml:"total_references"`
	Faults          int     `json:"faults" yaml:"faults"`
	Hits            int     `json:"hits" yaml:"hits"`
	Evictions       int     `json:"evictions" yaml:"evictions"` // faults that replaced a resident page
	DistinctPages   int     `json:"distinct_pages" yaml:"distinct_pages"`
	FaultRate       float64 `json:"fault_rate" yaml:"fault_rate"`
	HitRatio        float64 `json:"hit_ratio" yaml:"hit_ratio"`
}

// Summarize computes aggregate statistics from a step sequence.
// Safe for nil or empty input (returns zero-value fields).
func Summarize(steps []Step) Summary {
	var summary Summary
	if len(steps) == 0 {
		return summary
	}

	distinct := make(map[int]struct{})
	prevFrames := 0
	for _, s := range steps {
		distinct[s.Page] = struct{}{}
		if s.Fault {
			summary.Faults++
			// A fault that did not grow the resident set replaced a page.
			if len(s.Frames) == prevFrames {
				summary.Evictions++
			}
		} else {
			summary.Hits++
		}
		prevFrames = len(s.Frames)
	}

	summary.TotalReferences = len(steps)
	summary.DistinctPages = len(distinct)
	summary.FaultRate = float64(summary.Faults) / float64(summary.TotalReferences)
	summary.HitRatio = float64(summary.Hits) / float64(summary.TotalReferences)
	return summary
}

// FaultCount returns the number of faulting steps.
func FaultCount(steps []Step) int {
	n := 0
	for _, s := range steps {
		if s.Fault {
			n++
		}
	}
	return n
}
