// Package sim provides the page replacement simulation engine for pagesim.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - resident_set.go: fixed-capacity, slot-stable frame container
//   - eviction.go: Policy names and the five EvictionStrategy implementations
//   - simulator.go: the Simulator state machine (idle → running → completed) and Simulate
//
// # Architecture
//
// The engine is a pure function of (policy, reference string, capacity): every
// call builds a fresh ResidentSet and EvictionStrategy and returns one
// trace.Step per reference. Nothing is shared between calls, so concurrent
// simulations need no coordination.
//
// Supporting files:
//   - reference.go: parsing and seeded generation of reference strings
//   - compare.go: running every policy on one input, capacity sweeps, Belady's anomaly detection
//   - scenario.go: YAML scenario files
//
// Step records and summaries live in sim/trace/, which has no dependency on sim.
//
// # Key Interfaces
//
// EvictionStrategy is the single extension point. The engine reports every
// reference (RecordReference) and every load (RecordLoad) and asks for a
// victim slot (ChooseVictimSlot) only when a fault hits a full resident set.
package sim
