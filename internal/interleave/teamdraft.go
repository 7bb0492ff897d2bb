package interleave

import (
	"math/rand"

	"github.com/rankeval/ileval/internal/ranking"
)

// TeamDraft implements team-draft interleaving: two captains alternately pick
// their next top remaining document, with the side that has picked fewer
// documents going first and a coin flip breaking ties.
type TeamDraft struct{}

func (TeamDraft) Name() string { return KindTeamDraft }

// Interleave builds the interleaved list. Each side's cursor skips documents
// whose duplicate tag was already consumed by the other side.
func (TeamDraft) Interleave(pair ranking.Pair, depth int, rng *rand.Rand) []Entry {
	var (
		entries  []Entry
		pPicks   int
		ePicks   int
		pCursor  int
		eCursor  int
		consumed = map[int]bool{}
	)

	for len(entries) < depth {
		pTurn := pPicks < ePicks || (pPicks == ePicks && rng.Intn(2) == 1)

		side, cursor, team := pair.P, &pCursor, TeamP
		if !pTurn {
			side, cursor, team = pair.E, &eCursor, TeamE
		}

		doc, ok := nextUsable(side, cursor, consumed)
		if !ok {
			// The chosen side is exhausted; fall back to the other one.
			if pTurn {
				side, cursor, team = pair.E, &eCursor, TeamE
			} else {
				side, cursor, team = pair.P, &pCursor, TeamP
			}
			if doc, ok = nextUsable(side, cursor, consumed); !ok {
				break // both exhausted, return the partial list
			}
		}

		entries = append(entries, Entry{Grade: doc.Grade, Team: team})
		if team == TeamP {
			pPicks++
		} else {
			ePicks++
		}
		if doc.DupTag > 0 {
			consumed[doc.DupTag] = true
		}
	}
	return entries
}

// nextUsable advances the cursor past documents whose tag was already
// consumed and returns the first usable document, if any.
func nextUsable(side ranking.Ranking, cursor *int, consumed map[int]bool) (ranking.Document, bool) {
	for *cursor < len(side) {
		doc := side[*cursor]
		*cursor++
		if doc.DupTag == 0 || !consumed[doc.DupTag] {
			return doc, true
		}
	}
	return ranking.Document{}, false
}
