package sim

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oslabx/pagesim/sim/internal/testutil"
	"github.com/oslabx/pagesim/sim/trace"
)

// propertyInputs returns deterministic reference strings covering short,
// repetitive and wide-ranging inputs.
func propertyInputs(t *testing.T) [][]int {
	t.Helper()
	inputs := [][]int{
		testutil.BeladyReferences,
		{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1},
		{1, 1, 1, 1},
		{0},
		{3, 2, 1},
	}
	for seed := int64(1); seed <= 8; seed++ {
		refs, err := NewReferenceGenerator(seed).Generate(40, 9)
		require.NoError(t, err)
		inputs = append(inputs, refs)
	}
	return inputs
}

func TestSimulate_GoldenTraces(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			policy, err := ParsePolicy(tc.Policy)
			require.NoError(t, err)

			steps, err := Simulate(policy, tc.References, tc.Capacity)
			require.NoError(t, err)
			require.Len(t, steps, len(tc.References))

			assert.Equal(t, tc.Faults, trace.FaultCount(steps))
			for i, s := range steps {
				assert.Equal(t, tc.References[i], s.Page, "step %d page", i)
				assert.Equal(t, i, s.Step, "step %d index", i)
				assert.Equal(t, tc.Frames[i], s.Frames, "step %d frames", i)
				assert.Equal(t, tc.FaultFlags[i], s.Fault, "step %d fault", i)
			}
		})
	}
}

func TestSimulate_BeladyAnomaly_FIFO(t *testing.T) {
	// GIVEN the classic anomaly reference string
	refs := testutil.BeladyReferences

	// WHEN FIFO runs with 3 and then 4 frames
	three, err := Simulate(FIFO, refs, 3)
	require.NoError(t, err)
	four, err := Simulate(FIFO, refs, 4)
	require.NoError(t, err)

	// THEN more frames produce more faults
	assert.Equal(t, 9, trace.FaultCount(three))
	assert.Equal(t, 10, trace.FaultCount(four))
}

func TestSimulate_LRU_BeladyString_TenFaults(t *testing.T) {
	steps, err := Simulate(LRU, testutil.BeladyReferences, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, trace.FaultCount(steps))
}

func TestSimulate_TextbookString_FaultCounts(t *testing.T) {
	// The Silberschatz reference string with 3 frames.
	refs := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}
	want := map[Policy]int{FIFO: 15, LRU: 12, Optimal: 9}
	for policy, faults := range want {
		steps, err := Simulate(policy, refs, 3)
		require.NoError(t, err)
		assert.Equal(t, faults, trace.FaultCount(steps), "policy %s", policy)
	}
}

func TestSimulate_EmptyReferenceString_EmptyTrace(t *testing.T) {
	for _, p := range AllPolicies() {
		steps, err := Simulate(p, nil, 3)
		require.NoError(t, err, "policy %s", p)
		assert.NotNil(t, steps)
		assert.Empty(t, steps)
	}
}

func TestSimulate_InvalidCapacity_NoTrace(t *testing.T) {
	for _, p := range AllPolicies() {
		for _, capacity := range []int{0, -1, -100} {
			steps, err := Simulate(p, []int{1, 2, 3}, capacity)
			assert.True(t, errors.Is(err, ErrInvalidCapacity), "policy %s capacity %d", p, capacity)
			assert.Nil(t, steps)
		}
	}
}

func TestSimulate_InvalidCapacityCheckedBeforePolicy(t *testing.T) {
	_, err := Simulate("clock", []int{1}, 0)
	assert.True(t, errors.Is(err, ErrInvalidCapacity))
}

func TestSimulate_UnknownPolicy_Error(t *testing.T) {
	steps, err := Simulate("clock", []int{1, 2}, 2)
	assert.True(t, errors.Is(err, ErrUnknownPolicy))
	assert.Nil(t, steps)
}

func TestSimulate_NegativePage_Error(t *testing.T) {
	steps, err := Simulate(LRU, []int{1, -1, 2}, 2)
	assert.True(t, errors.Is(err, ErrInvalidPage))
	assert.Nil(t, steps)
}

func TestSimulate_ShorterThanCapacity_OnlyColdFaults(t *testing.T) {
	// GIVEN distinct pages fewer than the frame count, then repeats
	refs := []int{4, 5, 6, 4, 5, 6}
	for _, p := range AllPolicies() {
		steps, err := Simulate(p, refs, 8)
		require.NoError(t, err)
		require.Len(t, steps, len(refs))
		// THEN only the three cold references fault
		assert.Equal(t, 3, trace.FaultCount(steps), "policy %s", p)
		assert.Equal(t, []int{4, 5, 6}, steps[len(steps)-1].Frames)
	}
}

func TestSimulate_SingleFrame_FaultsOnEveryChange(t *testing.T) {
	refs := []int{1, 1, 2, 2, 1, 3, 3}
	for _, p := range AllPolicies() {
		steps, err := Simulate(p, refs, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, trace.FaultCount(steps), "policy %s", p)
		assert.Equal(t, []int{3}, steps[len(steps)-1].Frames)
	}
}

func TestSimulate_Properties(t *testing.T) {
	for _, refs := range propertyInputs(t) {
		for capacity := 1; capacity <= 5; capacity++ {
			for _, p := range AllPolicies() {
				name := fmt.Sprintf("%s/cap%d/%v", p, capacity, refs)
				steps, err := Simulate(p, refs, capacity)
				require.NoError(t, err, name)

				// Trace length invariant.
				require.Len(t, steps, len(refs), name)

				seen := make(map[int]bool)
				var prev []int
				for i, s := range steps {
					// Slot-count invariant and no duplicates.
					assert.LessOrEqual(t, len(s.Frames), capacity, name)
					assert.False(t, testutil.HasDuplicates(s.Frames), name)
					assert.True(t, testutil.ContainsPage(s.Frames, s.Page), "%s: step %d page not resident", name, i)

					// Hit correctness: a hit iff the page was resident after the previous step.
					assert.Equal(t, !testutil.ContainsPage(prev, s.Page), s.Fault, "%s: step %d", name, i)

					// Cold faults: the first reference to a page always faults.
					if !seen[s.Page] {
						assert.True(t, s.Fault, "%s: first reference at step %d must fault", name, i)
						seen[s.Page] = true
					}

					// Slot stability: a hit leaves frames untouched; a fault changes at most one slot.
					if len(prev) == len(s.Frames) {
						changed := 0
						for k := range prev {
							if prev[k] != s.Frames[k] {
								changed++
							}
						}
						if s.Fault {
							assert.Equal(t, 1, changed, "%s: step %d", name, i)
						} else {
							assert.Equal(t, 0, changed, "%s: step %d", name, i)
						}
					}
					prev = s.Frames
				}
			}
		}
	}
}

func TestSimulate_OptimalIsLowerBound(t *testing.T) {
	for _, refs := range propertyInputs(t) {
		for capacity := 1; capacity <= 5; capacity++ {
			opt, err := Simulate(Optimal, refs, capacity)
			require.NoError(t, err)
			optFaults := trace.FaultCount(opt)
			for _, p := range AllPolicies() {
				steps, err := Simulate(p, refs, capacity)
				require.NoError(t, err)
				assert.LessOrEqual(t, optFaults, trace.FaultCount(steps),
					"optimal beat by %s at capacity %d on %v", p, capacity, refs)
			}
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	refs, err := NewReferenceGenerator(99).Generate(60, 7)
	require.NoError(t, err)
	for _, p := range AllPolicies() {
		a, err := Simulate(p, refs, 4)
		require.NoError(t, err)
		b, err := Simulate(p, refs, 4)
		require.NoError(t, err)
		assert.Equal(t, a, b, "policy %s", p)
	}
}

func TestSimulate_ConcurrentCallsAreIndependent(t *testing.T) {
	refs := testutil.BeladyReferences
	want, err := Simulate(FIFO, refs, 3)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		t.Run(fmt.Sprintf("worker%d", i), func(t *testing.T) {
			t.Parallel()
			got, err := Simulate(FIFO, refs, 3)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSimulate_DoesNotAliasInputOrFrames(t *testing.T) {
	// GIVEN a caller-owned reference string
	refs := []int{1, 2, 3, 1}
	steps, err := Simulate(LRU, refs, 2)
	require.NoError(t, err)

	// WHEN the caller mutates its slice and a step's frames
	refs[0] = 42
	steps[0].Frames[0] = 42

	// THEN other steps are unaffected
	assert.Equal(t, 1, steps[0].Page)
	assert.Equal(t, []int{1, 2}, steps[1].Frames)
}

func TestSimulator_StateMachine(t *testing.T) {
	// GIVEN a fresh simulator
	s, err := NewSimulator(FIFO, []int{1, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())

	// WHEN the first reference is serviced
	require.True(t, s.Advance())
	assert.Equal(t, StateRunning, s.State())
	assert.Len(t, s.Trace(), 1)

	// WHEN the last reference is serviced
	require.True(t, s.Advance())
	assert.Equal(t, StateCompleted, s.State())

	// THEN further advances are no-ops
	assert.False(t, s.Advance())
	assert.Len(t, s.Run(), 2)
}

func TestSimulator_EmptyReferences_IdleToCompleted(t *testing.T) {
	s, err := NewSimulator(MFU, []int{}, 3)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, s.State())

	assert.False(t, s.Advance())
	assert.Equal(t, StateCompleted, s.State())
	assert.Empty(t, s.Trace())
}

func TestSimulator_TraceAppendDoesNotAliasEngine(t *testing.T) {
	// GIVEN a simulator that has serviced one reference
	s, err := NewSimulator(FIFO, []int{1, 2, 3}, 2)
	require.NoError(t, err)
	require.True(t, s.Advance())

	// WHEN the caller appends to the returned trace
	partial := s.Trace()
	_ = append(partial, trace.Step{Page: 99, Step: 1, Frames: []int{99}, Fault: true})

	// THEN the engine's next step is unaffected
	require.True(t, s.Advance())
	steps := s.Trace()
	require.Len(t, steps, 2)
	assert.Equal(t, 2, steps[1].Page)
	assert.Equal(t, []int{1, 2}, steps[1].Frames)

	// AND the same holds for Run
	full := s.Run()
	require.Len(t, full, 3)
	grown := append(full, trace.Step{Page: 77})
	grown[0].Page = 55
	assert.Equal(t, 1, s.Trace()[0].Page)
}
