package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRunCommand_JSONTrace(t *testing.T) {
	// GIVEN the Belady string with 4 frames under FIFO
	out := execute(t, "run", "--policy", "fifo", "--refs", "1,2,3,4,1,2,5,1,2,3,4,5",
		"--frames", "4", "--format", "json", "--log", "error")

	// THEN the JSON report shows 10 faults
	var report runReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Frames)
	assert.Len(t, report.Steps, 12)
	assert.Equal(t, 10, report.Summary.Faults)
}

func TestCompareCommand_Text(t *testing.T) {
	out := execute(t, "compare", "--refs", "7,0,1,2,0,3,0,4,2,3,0,3,2,1,2,0,1,7,0,1",
		"--frames", "3", "--policies", "fifo,lru,optimal", "--format", "text", "--log", "error")

	assert.Contains(t, out, "Fewest faults: optimal")
	assert.False(t, strings.Contains(out, "mfu"))
}

func TestGenerateCommand_Deterministic(t *testing.T) {
	a := execute(t, "generate", "--seed", "3", "--length", "10", "--count", "2")
	b := execute(t, "generate", "--seed", "3", "--length", "10", "--count", "2")

	assert.Equal(t, a, b)
	lines := strings.Split(strings.TrimSpace(a), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 9, strings.Count(lines[0], ","))
}

func TestPresetsCommand_ListsPresets(t *testing.T) {
	out := execute(t, "presets")
	assert.Contains(t, out, "belady")
	assert.Contains(t, out, "textbook")
}
