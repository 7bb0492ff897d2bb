// Package interleave merges two labeled rankings into a single presentation
// list while keeping per-item ranker attribution and never showing a shared
// document twice.
package interleave

import (
	"fmt"
	"math/rand"

	"github.com/go-viper/mapstructure/v2"

	"github.com/rankeval/ileval/internal/ranking"
)

// Team identifies which ranker sourced an interleaved entry.
type Team int

const (
	TeamP Team = 0
	TeamE Team = 1
)

// DefaultDepth is the interleaved list length used when none is configured.
const DefaultDepth = 3

// Entry is one emitted position: the document's relevance grade and the side
// whose draw produced it. The drawing side gets sole credit, even for
// documents shared by both rankings.
type Entry struct {
	Grade int  `json:"grade"`
	Team  Team `json:"team"`
}

// Grades extracts the relevance-grade sequence of an interleaved list.
func Grades(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Grade
	}
	return out
}

// Interleaver merges a ranking pair into at most depth entries. When both
// rankings run out of unconsumed documents before depth is reached, the
// partial list built so far is returned rather than an error.
type Interleaver interface {
	Name() string
	Interleave(pair ranking.Pair, depth int, rng *rand.Rand) []Entry
}

// Kind names for the factory.
const (
	KindTeamDraft     = "teamdraft"
	KindProbabilistic = "probabilistic"
)

// New builds an interleaver of the given kind, decoding strategy-specific
// parameters from the config map.
func New(kind string, params map[string]any) (Interleaver, error) {
	switch kind {
	case KindTeamDraft:
		return TeamDraft{}, nil
	case KindProbabilistic:
		var opts struct {
			Tau float64 `mapstructure:"tau"`
		}
		if err := mapstructure.Decode(params, &opts); err != nil {
			return nil, fmt.Errorf("interleave: probabilistic params: %w", err)
		}
		return NewProbabilistic(opts.Tau), nil
	default:
		return nil, fmt.Errorf("interleave: unknown interleaver kind %q", kind)
	}
}
