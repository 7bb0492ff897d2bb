// Package ranking holds the labeled-document types shared by the interleaving
// strategies and the power-analysis harness, plus the ERR effect-size metric
// and the synthetic pair generators.
package ranking

import "fmt"

// Document is one ranked result: a relevance grade (0 = irrelevant) and a
// duplicate tag. Tag 0 means the document has no counterpart in the other
// ranking; a positive tag is shared by exactly one document in each ranking
// of a pair and marks them as the same underlying document.
type Document struct {
	Grade  int `json:"grade"`
	DupTag int `json:"dup_tag"`
}

// Ranking is one ranker's ordered result list.
type Ranking []Document

// Grades returns the relevance grades in rank order.
func (r Ranking) Grades() []int {
	out := make([]int, len(r))
	for i, d := range r {
		out[i] = d.Grade
	}
	return out
}

// Pair is the candidate output of the production ranker P and the
// experimental ranker E for one query. Immutable once constructed.
type Pair struct {
	P Ranking `json:"p"`
	E Ranking `json:"e"`
}

// Validate checks the structural invariants a pair must satisfy before
// interleaving: equal lengths, unique nonzero tags within each side, every
// shared tag present on both sides with matching relevance grades.
func (p Pair) Validate() error {
	if len(p.P) != len(p.E) {
		return fmt.Errorf("ranking: pair sides have different lengths %d and %d", len(p.P), len(p.E))
	}
	pTags, err := tagGrades(p.P)
	if err != nil {
		return err
	}
	eTags, err := tagGrades(p.E)
	if err != nil {
		return err
	}
	for tag, grade := range pTags {
		other, ok := eTags[tag]
		if !ok {
			return fmt.Errorf("ranking: tag %d appears only in ranking P", tag)
		}
		if other != grade {
			return fmt.Errorf("ranking: tag %d has grade %d in P but %d in E", tag, grade, other)
		}
	}
	for tag := range eTags {
		if _, ok := pTags[tag]; !ok {
			return fmt.Errorf("ranking: tag %d appears only in ranking E", tag)
		}
	}
	return nil
}

func tagGrades(r Ranking) (map[int]int, error) {
	tags := make(map[int]int)
	for _, d := range r {
		if d.DupTag == 0 {
			continue
		}
		if d.DupTag < 0 {
			return nil, fmt.Errorf("ranking: negative duplicate tag %d", d.DupTag)
		}
		if _, ok := tags[d.DupTag]; ok {
			return nil, fmt.Errorf("ranking: tag %d repeated within one ranking", d.DupTag)
		}
		tags[d.DupTag] = d.Grade
	}
	return tags, nil
}

// IndexOfTag returns the position of the document carrying the given nonzero
// tag, or -1 when absent.
func (r Ranking) IndexOfTag(tag int) int {
	for i, d := range r {
		if d.DupTag == tag {
			return i
		}
	}
	return -1
}
