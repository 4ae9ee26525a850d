// Package testutil provides shared test infrastructure for the page replacement simulator.
// It loads the golden trace dataset and offers assertion helpers used across
// sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// BeladyReferences is the classic reference string exhibiting Belady's anomaly under FIFO.
var BeladyReferences = []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

// GoldenDataset represents the structure of testdata/goldentraces.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified simulation: inputs plus the exact expected trace.
type GoldenTestCase struct {
	Name       string  `json:"name"`
	Policy     string  `json:"policy"`
	Capacity   int     `json:"capacity"`
	References []int   `json:"references"`
	Faults     int     `json:"faults"`
	Frames     [][]int `json:"frames"`      // expected frames after each step
	FaultFlags []bool  `json:"fault_flags"` // expected fault flag for each step
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldentraces.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset has no test cases")
	}
	return &dataset
}

// HasDuplicates reports whether frames holds the same page more than once.
func HasDuplicates(frames []int) bool {
	seen := make(map[int]bool, len(frames))
	for _, p := range frames {
		if seen[p] {
			return true
		}
		seen[p] = true
	}
	return false
}

// ContainsPage reports whether page appears in frames.
func ContainsPage(frames []int, page int) bool {
	for _, p := range frames {
		if p == page {
			return true
		}
	}
	return false
}
