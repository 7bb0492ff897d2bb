package ranking

import "sort"

// Grades enumerates every relevance-grade vector of the given length with
// grades in [0, maxGrade], in lexicographic order.
func Grades(length, maxGrade int) [][]int {
	if length <= 0 {
		return nil
	}
	out := gradesUnsorted(length, maxGrade)
	sort.Slice(out, func(i, j int) bool { return lessIntSlice(out[i], out[j]) })
	return out
}

func gradesUnsorted(length, maxGrade int) [][]int {
	out := [][]int{make([]int, length)}
	for i := 0; i < length; i++ {
		for g := 1; g <= maxGrade; g++ {
			affix := make([]int, i+1)
			affix[i] = g
			for _, suffix := range gradesUnsorted(length-(i+1), maxGrade) {
				vec := make([]int, 0, length)
				vec = append(vec, affix...)
				vec = append(vec, suffix...)
				out = append(out, vec)
			}
		}
	}
	return out
}

func lessIntSlice(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Pairs enumerates every ordered pair of grade vectors of the given length,
// returned as Pairs with no duplicate tags assigned.
func Pairs(length, maxGrade int) []Pair {
	var out []Pair
	for _, vec := range Grades(length*2, maxGrade) {
		out = append(out, Pair{
			P: fromGrades(vec[:length]),
			E: fromGrades(vec[length:]),
		})
	}
	return out
}

func fromGrades(grades []int) Ranking {
	r := make(Ranking, len(grades))
	for i, g := range grades {
		r[i] = Document{Grade: g}
	}
	return r
}

// Conflicts enumerates every way of marking documents of the pair as shared
// between the two sides. Tag assignments where the two occurrences of a tag
// carry different relevance grades are dropped, so every returned pair
// satisfies the duplicate-tag invariant. Existing tags on the input are
// ignored; only its grades matter.
func Conflicts(pair Pair) []Pair {
	length := len(pair.P)
	pGrades := pair.P.Grades()
	eGrades := pair.E.Grades()

	var out []Pair
	for n := 0; n <= length; n++ {
		for _, ids0 := range tagLayouts(n, length, nil, true) {
			for _, ids1 := range tagLayouts(n, length, nil, false) {
				out = append(out, Pair{
					P: withTags(pGrades, ids0),
					E: withTags(eGrades, ids1),
				})
			}
		}
	}

	// Drop layouts where a shared tag lands on documents of unequal grade.
	kept := out[:0]
	for _, p := range out {
		if consistentTags(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// tagLayouts enumerates placements of the tags 1..n over length positions,
// 0 marking an untagged position. With ordered set, tags appear in increasing
// order, which collapses relabeling symmetries on the first side of a pair.
func tagLayouts(n, length int, prefix []int, ordered bool) [][]int {
	if len(prefix) >= length || n > length {
		layout := make([]int, len(prefix))
		copy(layout, prefix)
		return [][]int{layout}
	}

	var out [][]int
	for tag := 1; tag <= n; tag++ {
		if containsInt(prefix, tag) {
			continue
		}
		out = append(out, tagLayouts(n, length, extend(prefix, tag), ordered)...)
		if ordered {
			break
		}
	}
	// A position may stay untagged only while enough slots remain for the
	// unplaced tags.
	placed := 0
	for _, t := range prefix {
		if t != 0 {
			placed++
		}
	}
	if length-len(prefix) > n-placed {
		out = append(out, tagLayouts(n, length, extend(prefix, 0), ordered)...)
	}
	return out
}

func extend(prefix []int, v int) []int {
	next := make([]int, len(prefix)+1)
	copy(next, prefix)
	next[len(prefix)] = v
	return next
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func withTags(grades, tags []int) Ranking {
	r := make(Ranking, len(grades))
	for i, g := range grades {
		r[i] = Document{Grade: g, DupTag: tags[i]}
	}
	return r
}

func consistentTags(pair Pair) bool {
	for _, d0 := range pair.P {
		if d0.DupTag == 0 {
			continue
		}
		for _, d1 := range pair.E {
			if d1.DupTag == d0.DupTag && d1.Grade != d0.Grade {
				return false
			}
		}
	}
	return true
}
