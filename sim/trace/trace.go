package trace

// PolicyTrace collects the steps of one simulation run.
// Steps are appended in reference-string order and never modified afterwards.
type PolicyTrace struct {
	Policy   string
	Capacity int
	Steps    []Step
}

// NewPolicyTrace creates a PolicyTrace ready for recording.
// sizeHint pre-allocates room for that many steps.
func NewPolicyTrace(policy string, capacity, sizeHint int) *PolicyTrace {
	return &PolicyTrace{
		Policy:   policy,
		Capacity: capacity,
		Steps:    make([]Step, 0, sizeHint),
	}
}

// RecordStep appends a step. frames is copied so later mutation of the
// caller's slice cannot leak into the recorded snapshot.
func (pt *PolicyTrace) RecordStep(page, step int, frames []int, fault bool) {
	snapshot := make([]int, len(frames))
	copy(snapshot, frames)
	pt.Steps = append(pt.Steps, Step{
		Page:   page,
		Step:   step,
		Frames: snapshot,
		Fault:  fault,
	})
}

// Len returns the number of recorded steps.
func (pt *PolicyTrace) Len() int {
	return len(pt.Steps)
}
