package sim

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

const (
	// DefaultReferenceLength is the length of generated reference strings.
	DefaultReferenceLength = 15
	// DefaultMaxPage is the largest page identifier generated by default (pages 0..9).
	DefaultMaxPage = 9
)

// ParseReferenceString parses page identifiers separated by commas and/or whitespace,
// e.g. "7,0,1,2" or "7 0 1 2". Negative identifiers are rejected.
func ParseReferenceString(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	refs := make([]int, 0, len(fields))
	for i, f := range fields {
		page, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %q is not an integer", i, f)
		}
		if page < 0 {
			return nil, fmt.Errorf("%w: page %d at position %d is negative", ErrInvalidPage, page, i)
		}
		refs = append(refs, page)
	}
	return refs, nil
}

// FormatReferenceString renders refs in the comma-separated form accepted by ParseReferenceString.
func FormatReferenceString(refs []int) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// ReferenceGenerator produces uniformly random reference strings.
// The same seed always yields the same sequence of strings.
// Not thread-safe.
type ReferenceGenerator struct {
	seed int64
	rng  *rand.Rand
}

// NewReferenceGenerator creates a generator seeded with seed.
func NewReferenceGenerator(seed int64) *ReferenceGenerator {
	return &ReferenceGenerator{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the generator was created with.
func (g *ReferenceGenerator) Seed() int64 {
	return g.seed
}

// Generate returns length pages drawn uniformly from [0, maxPage].
func (g *ReferenceGenerator) Generate(length, maxPage int) ([]int, error) {
	if length < 0 {
		return nil, fmt.Errorf("length must be non-negative, got %d", length)
	}
	if maxPage < 0 {
		return nil, fmt.Errorf("%w: max page must be non-negative, got %d", ErrInvalidPage, maxPage)
	}
	if maxPage == math.MaxInt {
		return nil, fmt.Errorf("%w: max page %d is out of range", ErrInvalidPage, maxPage)
	}
	refs := make([]int, length)
	for i := range refs {
		refs[i] = g.rng.Intn(maxPage + 1)
	}
	return refs, nil
}
