package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairValidate(t *testing.T) {
	tests := []struct {
		name    string
		pair    Pair
		wantErr bool
	}{
		{
			"no_duplicates",
			Pair{P: fromGrades([]int{0, 1}), E: fromGrades([]int{1, 0})},
			false,
		},
		{
			"matching_duplicate",
			Pair{
				P: Ranking{{Grade: 1, DupTag: 1}, {Grade: 0}},
				E: Ranking{{Grade: 0}, {Grade: 1, DupTag: 1}},
			},
			false,
		},
		{
			"length_mismatch",
			Pair{P: fromGrades([]int{0}), E: fromGrades([]int{0, 0})},
			true,
		},
		{
			"tag_only_in_p",
			Pair{
				P: Ranking{{Grade: 0, DupTag: 1}, {Grade: 0}},
				E: fromGrades([]int{0, 0}),
			},
			true,
		},
		{
			"grade_mismatch_on_tag",
			Pair{
				P: Ranking{{Grade: 1, DupTag: 1}, {Grade: 0}},
				E: Ranking{{Grade: 0, DupTag: 1}, {Grade: 0}},
			},
			true,
		},
		{
			"tag_repeated_within_side",
			Pair{
				P: Ranking{{Grade: 0, DupTag: 1}, {Grade: 0, DupTag: 1}},
				E: Ranking{{Grade: 0, DupTag: 1}, {Grade: 0}},
			},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pair.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIndexOfTag(t *testing.T) {
	r := Ranking{{Grade: 0, DupTag: 2}, {Grade: 1, DupTag: 0}, {Grade: 0, DupTag: 5}}
	assert.Equal(t, 0, r.IndexOfTag(2))
	assert.Equal(t, 2, r.IndexOfTag(5))
	assert.Equal(t, -1, r.IndexOfTag(9))
}
