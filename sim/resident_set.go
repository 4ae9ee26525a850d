package sim

import "fmt"

// ResidentSet is a fixed-capacity container of loaded pages addressed by slot.
// Slot indices are stable: a page that replaces another takes over its slot,
// so snapshots stay comparable step to step. Slots fill from index 0 upward
// and are never vacated, so the occupied slots are always [0, Len()).
//
// ResidentSet never evicts on its own; it only performs the mutation it is told to.
type ResidentSet struct {
	capacity int
	slots    []int
	index    map[int]int // page → slot
}

// NewResidentSet creates an empty ResidentSet.
// Panics if capacity < 1; callers validate capacity before construction.
func NewResidentSet(capacity int) *ResidentSet {
	if capacity < 1 {
		panic(fmt.Sprintf("resident set capacity must be >= 1, got %d", capacity))
	}
	return &ResidentSet{
		capacity: capacity,
		slots:    make([]int, 0, capacity),
		index:    make(map[int]int, capacity),
	}
}

// Contains reports whether page is resident.
func (rs *ResidentSet) Contains(page int) bool {
	_, ok := rs.index[page]
	return ok
}

// SlotOf returns the slot holding page, or -1 if it is not resident.
func (rs *ResidentSet) SlotOf(page int) int {
	if slot, ok := rs.index[page]; ok {
		return slot
	}
	return -1
}

// IsFull reports whether every slot is occupied.
func (rs *ResidentSet) IsFull() bool {
	return len(rs.slots) == rs.capacity
}

// Len returns the number of occupied slots.
func (rs *ResidentSet) Len() int {
	return len(rs.slots)
}

// Capacity returns the fixed slot count.
func (rs *ResidentSet) Capacity() int {
	return rs.capacity
}

// Insert places page into the lowest free slot and returns that slot index.
// Inserting while full, or inserting an already-resident page, is an engine bug and panics.
func (rs *ResidentSet) Insert(page int) int {
	if rs.IsFull() {
		panic(fmt.Sprintf("invariant violation: insert of page %d into full resident set (capacity %d)", page, rs.capacity))
	}
	if rs.Contains(page) {
		panic(fmt.Sprintf("invariant violation: page %d is already resident in slot %d", page, rs.index[page]))
	}
	slot := len(rs.slots)
	rs.slots = append(rs.slots, page)
	rs.index[page] = slot
	return slot
}

// Replace overwrites the page in slot with page. The slot count is unchanged.
// Panics on an unoccupied slot or an already-resident page.
func (rs *ResidentSet) Replace(slot, page int) {
	if slot < 0 || slot >= len(rs.slots) {
		panic(fmt.Sprintf("invariant violation: replace into unoccupied slot %d (occupied %d)", slot, len(rs.slots)))
	}
	if rs.Contains(page) {
		panic(fmt.Sprintf("invariant violation: page %d is already resident in slot %d", page, rs.index[page]))
	}
	delete(rs.index, rs.slots[slot])
	rs.slots[slot] = page
	rs.index[page] = slot
}

// Slots returns the live slot contents. Callers must not modify the result.
func (rs *ResidentSet) Slots() []int {
	return rs.slots
}

// Snapshot returns a copy of the slot contents ordered by slot index.
func (rs *ResidentSet) Snapshot() []int {
	out := make([]int, len(rs.slots))
	copy(out, rs.slots)
	return out
}
