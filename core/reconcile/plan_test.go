package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputePlan_Partition tests the three-way membership split.
func TestComputePlan_Partition(t *testing.T) {
	plan := ComputePlan(
		[]string{"AAAA1111", "BBBB2222", "CCCC3333"},
		[]string{"BBBB2222", "CCCC3333", "DDDD4444"},
		nil,
	)

	assert.Equal(t, []string{"AAAA1111"}, plan.ToAdd)
	assert.Equal(t, []string{"DDDD4444"}, plan.ToRemove)
	assert.Equal(t, []string{"BBBB2222", "CCCC3333"}, plan.InBoth)
	assert.Empty(t, plan.Unresolved)
	assert.False(t, plan.Empty())
}

// TestComputePlan_Identical tests that matching sets produce an empty plan.
func TestComputePlan_Identical(t *testing.T) {
	plan := ComputePlan(
		[]string{"AAAA1111", "BBBB2222"},
		[]string{"BBBB2222", "AAAA1111"},
		nil,
	)

	assert.Empty(t, plan.ToAdd)
	assert.Empty(t, plan.ToRemove)
	assert.Equal(t, []string{"AAAA1111", "BBBB2222"}, plan.InBoth)
	assert.True(t, plan.Empty())
}

// TestComputePlan_EmptySides tests the degenerate input and collection cases.
func TestComputePlan_EmptySides(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		current  []string
		toAdd    []string
		toRemove []string
	}{
		{
			name:     "empty collection adds everything",
			input:    []string{"AAAA1111", "BBBB2222"},
			current:  nil,
			toAdd:    []string{"AAAA1111", "BBBB2222"},
			toRemove: []string{},
		},
		{
			name:     "empty input removes everything",
			input:    nil,
			current:  []string{"AAAA1111", "BBBB2222"},
			toAdd:    []string{},
			toRemove: []string{"AAAA1111", "BBBB2222"},
		},
		{
			name:     "both empty",
			input:    nil,
			current:  nil,
			toAdd:    []string{},
			toRemove: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ComputePlan(tt.input, tt.current, nil)
			assert.Equal(t, tt.toAdd, plan.ToAdd)
			assert.Equal(t, tt.toRemove, plan.ToRemove)
		})
	}
}

// TestComputePlan_Duplicates tests that duplicated keys count once.
func TestComputePlan_Duplicates(t *testing.T) {
	plan := ComputePlan(
		[]string{"AAAA1111", "AAAA1111", "BBBB2222"},
		[]string{"BBBB2222", "BBBB2222"},
		[]string{"smith2023", "smith2023"},
	)

	assert.Equal(t, []string{"AAAA1111"}, plan.ToAdd)
	assert.Equal(t, []string{"BBBB2222"}, plan.InBoth)
	assert.Equal(t, []string{"smith2023"}, plan.Unresolved)
}

// TestComputePlan_Deterministic tests that plans over the same state are
// identical regardless of input ordering.
func TestComputePlan_Deterministic(t *testing.T) {
	a := ComputePlan([]string{"C3", "A1", "B2"}, []string{"D4", "B2"}, []string{"y", "x"})
	b := ComputePlan([]string{"B2", "C3", "A1"}, []string{"B2", "D4"}, []string{"x", "y"})
	assert.Equal(t, a, b)
}
