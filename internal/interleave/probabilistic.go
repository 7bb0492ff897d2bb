package interleave

import (
	"math"
	"math/rand"

	"github.com/rankeval/ileval/internal/ranking"
)

// DefaultTau is the softmax decay exponent over rank positions.
const DefaultTau = 3

// Probabilistic implements probabilistic interleaving: each side draws its
// next document from a softmax over its remaining rank positions with weight
// rank^-tau, so lower-ranked documents still have a small chance of showing.
type Probabilistic struct {
	tau float64
}

// NewProbabilistic returns a probabilistic interleaver; tau <= 0 selects
// DefaultTau.
func NewProbabilistic(tau float64) Probabilistic {
	if tau <= 0 {
		tau = DefaultTau
	}
	return Probabilistic{tau: tau}
}

func (Probabilistic) Name() string { return KindProbabilistic }

// Tau returns the configured softmax exponent.
func (p Probabilistic) Tau() float64 { return p.tau }

// Interleave builds the interleaved list. The first draw of a shared document
// emits it and removes the counterpart position from the other side so the
// document can never appear twice.
func (p Probabilistic) Interleave(pair ranking.Pair, depth int, rng *rand.Rand) []Entry {
	pIdx := remainingIndices(len(pair.P))
	eIdx := remainingIndices(len(pair.E))
	consumed := map[int]bool{}

	var entries []Entry
	for len(entries) < depth && (len(pIdx) > 0 || len(eIdx) > 0) {
		pTurn := rng.Intn(2) == 1

		var doc ranking.Document
		var emit bool
		if (pTurn && len(pIdx) > 0) || len(eIdx) == 0 {
			doc, pIdx = p.draw(pair.P, pIdx, rng)
			emit, eIdx = resolveDuplicate(doc, consumed, pair.E, eIdx)
			if emit {
				entries = append(entries, Entry{Grade: doc.Grade, Team: TeamP})
			}
		} else {
			doc, eIdx = p.draw(pair.E, eIdx, rng)
			emit, pIdx = resolveDuplicate(doc, consumed, pair.P, pIdx)
			if emit {
				entries = append(entries, Entry{Grade: doc.Grade, Team: TeamE})
			}
		}
	}
	return entries
}

// draw samples one remaining position from the softmax distribution and
// removes it from the remaining set.
func (p Probabilistic) draw(side ranking.Ranking, remaining []int, rng *rand.Rand) (ranking.Document, []int) {
	weights := make([]float64, len(remaining))
	total := 0.0
	for i, idx := range remaining {
		w := 1 / math.Pow(float64(idx+1), p.tau)
		weights[i] = w
		total += w
	}

	target := rng.Float64() * total
	chosen := len(remaining) - 1
	acc := 0.0
	for i, w := range weights {
		acc += w
		if target < acc {
			chosen = i
			break
		}
	}

	idx := remaining[chosen]
	doc := side[idx]
	remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	return doc, remaining
}

// resolveDuplicate decides whether a drawn document is emitted and suppresses
// the counterpart position on the other side on the first draw of its tag.
func resolveDuplicate(doc ranking.Document, consumed map[int]bool, other ranking.Ranking, otherIdx []int) (bool, []int) {
	if doc.DupTag == 0 {
		return true, otherIdx
	}
	if consumed[doc.DupTag] {
		return false, otherIdx
	}
	consumed[doc.DupTag] = true
	if pos := other.IndexOfTag(doc.DupTag); pos >= 0 {
		otherIdx = removeValue(otherIdx, pos)
	}
	return true, otherIdx
}

func remainingIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func removeValue(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
