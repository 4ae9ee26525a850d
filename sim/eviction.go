package sim

import (
	"fmt"
	"strings"
)

// Policy names a page replacement policy.
type Policy string

const (
	// FIFO evicts the page that was loaded earliest.
	FIFO Policy = "fifo"
	// LRU evicts the page whose last reference is oldest.
	LRU Policy = "lru"
	// Optimal (Belady) evicts the page whose next reference is furthest away, or never comes.
	Optimal Policy = "optimal"
	// LFU evicts the page with the fewest references so far.
	LFU Policy = "lfu"
	// MFU evicts the page with the most references so far.
	MFU Policy = "mfu"
)

// allPolicies fixes the order used by comparisons and CLI help text.
var allPolicies = []Policy{FIFO, LRU, Optimal, LFU, MFU}

// validPolicies is the set of recognized policy names.
var validPolicies = map[Policy]bool{
	FIFO: true, LRU: true, Optimal: true, LFU: true, MFU: true,
}

// AllPolicies returns every supported policy in a fixed order.
func AllPolicies() []Policy {
	out := make([]Policy, len(allPolicies))
	copy(out, allPolicies)
	return out
}

// IsValidPolicy reports whether name is a recognized policy.
func IsValidPolicy(name string) bool {
	return validPolicies[Policy(name)]
}

// ParsePolicy converts a case-insensitive name into a Policy.
// "opt" is accepted as shorthand for "optimal".
func ParsePolicy(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "opt" {
		n = string(Optimal)
	}
	if !IsValidPolicy(n) {
		return "", fmt.Errorf("%w %q; valid policies: %v", ErrUnknownPolicy, name, allPolicies)
	}
	return Policy(n), nil
}

// EvictionStrategy picks the slot to evict when the resident set is full.
// Strategy metadata is private to each implementation; the engine only
// reports references and loads to it.
type EvictionStrategy interface {
	// RecordReference is called once per reference, before any eviction decision for it.
	RecordReference(page int)
	// RecordLoad is called whenever a page is loaded into slot, by insert or by replace.
	RecordLoad(slot int)
	// ChooseVictimSlot returns the slot to evict. frames is the full resident
	// set by slot, refs the whole reference string, step the position being serviced.
	ChooseVictimSlot(frames []int, refs []int, step int) int
}

// FIFOStrategy evicts slots in the order they were loaded.
// The queue holds slot indices, not pages.
type FIFOStrategy struct {
	queue []int
}

func (f *FIFOStrategy) RecordReference(_ int) {}

func (f *FIFOStrategy) RecordLoad(slot int) {
	f.queue = append(f.queue, slot)
}

func (f *FIFOStrategy) ChooseVictimSlot(_ []int, _ []int, _ int) int {
	if len(f.queue) == 0 {
		panic("invariant violation: FIFO eviction with empty load queue")
	}
	victim := f.queue[0]
	f.queue = f.queue[1:]
	return victim
}

// LRUStrategy scans backward through the reference string for each
// resident page's last use. It keeps no counters.
type LRUStrategy struct{}

func (l *LRUStrategy) RecordReference(_ int) {}

func (l *LRUStrategy) RecordLoad(_ int) {}

// ChooseVictimSlot evicts the slot with the oldest last use. Resident pages
// are distinct, so last-use positions never tie.
func (l *LRUStrategy) ChooseVictimSlot(frames []int, refs []int, step int) int {
	victim := -1
	oldest := step
	for slot, page := range frames {
		lastUse := -1
		for j := step - 1; j >= 0; j-- {
			if refs[j] == page {
				lastUse = j
				break
			}
		}
		if lastUse < oldest {
			oldest = lastUse
			victim = slot
		}
	}
	if victim < 0 {
		panic(fmt.Sprintf("invariant violation: LRU found no victim among %v at step %d", frames, step))
	}
	return victim
}

// OptimalStrategy looks ahead in the reference string. Stateless.
type OptimalStrategy struct{}

func (o *OptimalStrategy) RecordReference(_ int) {}

func (o *OptimalStrategy) RecordLoad(_ int) {}

// ChooseVictimSlot returns the first slot whose page is never referenced
// again, or else the slot whose next use lies furthest ahead.
func (o *OptimalStrategy) ChooseVictimSlot(frames []int, refs []int, step int) int {
	victim := 0
	furthest := -1
	for slot, page := range frames {
		nextUse := -1
		for j := step + 1; j < len(refs); j++ {
			if refs[j] == page {
				nextUse = j
				break
			}
		}
		if nextUse < 0 {
			return slot
		}
		if nextUse > furthest {
			furthest = nextUse
			victim = slot
		}
	}
	return victim
}

// frequencyStrategy holds the cumulative per-page reference counts shared by LFU and MFU.
// Counts only grow; a new strategy is built for every simulation.
type frequencyStrategy struct {
	counts map[int]int
}

func newFrequencyStrategy() frequencyStrategy {
	return frequencyStrategy{counts: make(map[int]int)}
}

func (f *frequencyStrategy) RecordReference(page int) {
	f.counts[page]++
}

func (f *frequencyStrategy) RecordLoad(_ int) {}

// Count returns the number of references to page seen so far.
func (f *frequencyStrategy) Count(page int) int {
	return f.counts[page]
}

// LFUStrategy evicts the least frequently referenced page; lowest slot wins ties.
type LFUStrategy struct {
	frequencyStrategy
}

func (l *LFUStrategy) ChooseVictimSlot(frames []int, _ []int, _ int) int {
	victim := 0
	for slot := 1; slot < len(frames); slot++ {
		if l.counts[frames[slot]] < l.counts[frames[victim]] {
			victim = slot
		}
	}
	return victim
}

// MFUStrategy evicts the most frequently referenced page; lowest slot wins ties.
type MFUStrategy struct {
	frequencyStrategy
}

func (m *MFUStrategy) ChooseVictimSlot(frames []int, _ []int, _ int) int {
	victim := 0
	for slot := 1; slot < len(frames); slot++ {
		if m.counts[frames[slot]] > m.counts[frames[victim]] {
			victim = slot
		}
	}
	return victim
}

// NewEvictionStrategy creates a fresh EvictionStrategy for policy.
// Panics on unrecognized policies; callers validate with ParsePolicy first.
func NewEvictionStrategy(policy Policy) EvictionStrategy {
	if !validPolicies[policy] {
		panic(fmt.Sprintf("unknown policy %q", policy))
	}
	switch policy {
	case FIFO:
		return &FIFOStrategy{}
	case LRU:
		return &LRUStrategy{}
	case Optimal:
		return &OptimalStrategy{}
	case LFU:
		return &LFUStrategy{frequencyStrategy: newFrequencyStrategy()}
	case MFU:
		return &MFUStrategy{frequencyStrategy: newFrequencyStrategy()}
	default:
		panic(fmt.Sprintf("unhandled policy %q", policy))
	}
}
