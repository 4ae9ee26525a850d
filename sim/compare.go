package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oslabx/pagesim/sim/trace"
)

// PolicyResult holds one policy's trace and its summary.
type PolicyResult struct {
	Policy  Policy        `json:"policy" yaml:"policy"`
	Steps   []trace.Step  `json:"steps" yaml:"steps"`
	Summary trace.Summary `json:"summary" yaml:"summary"`
}

// Compare runs each policy on the same reference string and capacity.
// With no policies given, every policy in AllPolicies() order is run.
// Results are returned in the order the policies were given.
func Compare(refs []int, capacity int, policies ...Policy) ([]PolicyResult, error) {
	if len(policies) == 0 {
		policies = AllPolicies()
	}
	results := make([]PolicyResult, 0, len(policies))
	for _, p := range policies {
		steps, err := Simulate(p, refs, capacity)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", p, err)
		}
		results = append(results, PolicyResult{
			Policy:  p,
			Steps:   steps,
			Summary: trace.Summarize(steps),
		})
	}
	return results, nil
}

// SweepPoint is the fault count of one policy at one capacity.
type SweepPoint struct {
	Capacity int `json:"capacity" yaml:"capacity"`
	Faults   int `json:"faults" yaml:"faults"`
}

// BeladyAnomaly records a capacity increase that raised the fault count.
type BeladyAnomaly struct {
	FromCapacity int `json:"from_capacity" yaml:"from_capacity"`
	ToCapacity   int `json:"to_capacity" yaml:"to_capacity"`
	FromFaults   int `json:"from_faults" yaml:"from_faults"`
	ToFaults     int `json:"to_faults" yaml:"to_faults"`
}

// SweepCapacity runs policy for every capacity in [minCapacity, maxCapacity].
func SweepCapacity(policy Policy, refs []int, minCapacity, maxCapacity int) ([]SweepPoint, error) {
	if minCapacity < 1 {
		return nil, fmt.Errorf("%w: minimum capacity must be >= 1, got %d", ErrInvalidCapacity, minCapacity)
	}
	if maxCapacity < minCapacity {
		return nil, fmt.Errorf("%w: maximum capacity %d is below minimum %d", ErrInvalidCapacity, maxCapacity, minCapacity)
	}
	points := make([]SweepPoint, 0, maxCapacity-minCapacity+1)
	for c := minCapacity; c <= maxCapacity; c++ {
		steps, err := Simulate(policy, refs, c)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{Capacity: c, Faults: trace.FaultCount(steps)})
	}
	return points, nil
}

// FindBeladyAnomalies returns every adjacent pair of sweep points where the
// larger capacity produced more faults. points must be in ascending capacity order.
func FindBeladyAnomalies(points []SweepPoint) []BeladyAnomaly {
	anomalies := make([]BeladyAnomaly, 0)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if cur.Capacity > prev.Capacity && cur.Faults > prev.Faults {
			logrus.Debugf("Belady's anomaly: capacity %d → %d raised faults %d → %d",
				prev.Capacity, cur.Capacity, prev.Faults, cur.Faults)
			anomalies = append(anomalies, BeladyAnomaly{
				FromCapacity: prev.Capacity,
				ToCapacity:   cur.Capacity,
				FromFaults:   prev.Faults,
				ToFaults:     cur.Faults,
			})
		}
	}
	return anomalies
}
