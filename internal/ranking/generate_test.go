package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrades(t *testing.T) {
	got := Grades(2, 1)
	want := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	assert.Equal(t, want, got)
}

func TestGrades_Counts(t *testing.T) {
	tests := []struct {
		length, maxGrade, want int
	}{
		{1, 1, 2},
		{2, 1, 4},
		{3, 1, 8},
		{2, 2, 9},
		{3, 2, 27},
	}
	for _, tt := range tests {
		got := Grades(tt.length, tt.maxGrade)
		assert.Len(t, got, tt.want, "Grades(%d, %d)", tt.length, tt.maxGrade)
	}
}

func TestGrades_ZeroLength(t *testing.T) {
	assert.Empty(t, Grades(0, 1))
}

func TestPairs(t *testing.T) {
	pairs := Pairs(2, 1)
	assert.Len(t, pairs, 16) // 2^(2*2)

	for _, p := range pairs {
		assert.Len(t, p.P, 2)
		assert.Len(t, p.E, 2)
		require.NoError(t, p.Validate())
	}
}

func TestConflicts_Count(t *testing.T) {
	// For an all-equal-grade pair of length 3 no layout is filtered:
	// n=0 gives 1, n=1 gives 3*3, n=2 gives 3*6, n=3 gives 1*6.
	pair := Pair{P: fromGrades([]int{0, 0, 0}), E: fromGrades([]int{0, 0, 0})}
	assert.Len(t, Conflicts(pair), 34)
}

func TestConflicts_InvariantHolds(t *testing.T) {
	pair := Pair{P: fromGrades([]int{0, 1, 0}), E: fromGrades([]int{1, 0, 0})}
	perms := Conflicts(pair)
	require.NotEmpty(t, perms)

	for _, perm := range perms {
		require.NoError(t, perm.Validate(), "perm P=%v E=%v", perm.P, perm.E)
		assert.Equal(t, []int{0, 1, 0}, perm.P.Grades())
		assert.Equal(t, []int{1, 0, 0}, perm.E.Grades())
	}
}

func TestConflicts_FiltersMismatchedGrades(t *testing.T) {
	// With distinct grade patterns, layouts pairing unequal grades must be gone.
	pair := Pair{P: fromGrades([]int{1, 0}), E: fromGrades([]int{0, 1})}
	for _, perm := range Conflicts(pair) {
		require.NoError(t, perm.Validate())
	}
}
