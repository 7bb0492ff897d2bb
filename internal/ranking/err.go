package ranking

import "math"

// ERR computes Expected Reciprocal Rank for a relevance-grade sequence,
// following Chapelle et al., "Expected Reciprocal Rank for Graded Relevance".
// Grades are mapped to relevance probabilities with R(g) = (2^g - 1) / 2^gMax
// where gMax is the highest grade in the sequence. An all-zero sequence
// scores 0.
func ERR(grades []int) float64 {
	if len(grades) == 0 {
		return 0
	}
	maxGrade := grades[0]
	for _, g := range grades[1:] {
		if g > maxGrade {
			maxGrade = g
		}
	}
	denom := math.Pow(2, float64(maxGrade))

	p := 1.0
	err := 0.0
	for r, g := range grades {
		rel := (math.Pow(2, float64(g)) - 1) / denom
		err += p * rel / float64(r+1)
		p *= 1 - rel
	}
	return err
}

// DeltaERR is the effect size of a pair: ERR of the experimental ranking
// minus ERR of the production ranking.
func DeltaERR(pair Pair) float64 {
	return ERR(pair.E.Grades()) - ERR(pair.P.Grades())
}
