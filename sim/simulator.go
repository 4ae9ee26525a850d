// Defines the Simulator that drives one page replacement run over a reference string.
// The simulator owns the resident set, consults an EvictionStrategy on faults at
// capacity, and records one trace.Step per reference.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oslabx/pagesim/sim/trace"
)

// EngineState represents the lifecycle state of a Simulator.
type EngineState string

const (
	StateIdle      EngineState = "idle"
	StateRunning   EngineState = "running"
	StateCompleted EngineState = "completed"
)

// Simulator replays a reference string against a fixed-capacity resident set.
// A Simulator is single-use: create a new one per run.
type Simulator struct {
	Policy   Policy
	Capacity int

	refs      []int
	residents *ResidentSet
	strategy  EvictionStrategy
	trace     *trace.PolicyTrace
	state     EngineState
	next      int // position of the next reference to service
}

// NewSimulator validates its inputs and returns an idle Simulator.
// refs is copied; the caller may reuse its slice.
func NewSimulator(policy Policy, refs []int, capacity int) (*Simulator, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be >= 1, got %d", ErrInvalidCapacity, capacity)
	}
	if !validPolicies[policy] {
		return nil, fmt.Errorf("%w %q; valid policies: %v", ErrUnknownPolicy, policy, allPolicies)
	}
	for i, page := range refs {
		if page < 0 {
			return nil, fmt.Errorf("%w: page %d at position %d is negative", ErrInvalidPage, page, i)
		}
	}

	owned := make([]int, len(refs))
	copy(owned, refs)

	return &Simulator{
		Policy:    policy,
		Capacity:  capacity,
		refs:      owned,
		residents: NewResidentSet(capacity),
		strategy:  NewEvictionStrategy(policy),
		trace:     trace.NewPolicyTrace(string(policy), capacity, len(owned)),
		state:     StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (s *Simulator) State() EngineState {
	return s.state
}

// Advance services the next reference and records its step.
// Returns false once every reference has been serviced.
func (s *Simulator) Advance() bool {
	if s.state == StateCompleted {
		return false
	}
	if s.next >= len(s.refs) {
		s.state = StateCompleted
		logrus.Debugf("[%s] simulation completed after %d references", s.Policy, len(s.refs))
		return false
	}
	s.state = StateRunning

	i := s.next
	page := s.refs[i]
	s.strategy.RecordReference(page)

	fault := !s.residents.Contains(page)
	if fault {
		if !s.residents.IsFull() {
			slot := s.residents.Insert(page)
			s.strategy.RecordLoad(slot)
			logrus.Tracef("[%s] step %d: page %d loaded into free slot %d", s.Policy, i, page, slot)
		} else {
			slot := s.strategy.ChooseVictimSlot(s.residents.Slots(), s.refs, i)
			victim := s.residents.Slots()[slot]
			s.residents.Replace(slot, page)
			s.strategy.RecordLoad(slot)
			logrus.Debugf("[%s] step %d: page %d evicted page %d from slot %d", s.Policy, i, page, victim, slot)
		}
	}

	s.trace.RecordStep(page, i, s.residents.Slots(), fault)
	s.next++
	if s.next == len(s.refs) {
		s.state = StateCompleted
		logrus.Debugf("[%s] simulation completed after %d references", s.Policy, len(s.refs))
	}
	return true
}

// Run services every remaining reference and returns the full trace.
func (s *Simulator) Run() []trace.Step {
	for s.Advance() {
	}
	return s.Trace()
}

// Trace returns the steps recorded so far.
// The result is capped at its length so appends by the caller never reach the engine's buffer.
func (s *Simulator) Trace() []trace.Step {
	steps := s.trace.Steps
	return steps[:len(steps):len(steps)]
}

// Simulate runs policy over refs with capacity frames and returns one step per reference.
// Errors are returned before any step is produced: ErrInvalidCapacity, ErrUnknownPolicy,
// ErrInvalidPage. An empty reference string yields an empty, non-nil trace.
func Simulate(policy Policy, refs []int, capacity int) ([]trace.Step, error) {
	s, err := NewSimulator(policy, refs, capacity)
	if err != nil {
		return nil, err
	}
	steps := s.Run()
	logrus.Debugf("[%s] %d references, capacity %d, %d faults",
		policy, len(steps), capacity, trace.FaultCount(steps))
	return steps, nil
}
