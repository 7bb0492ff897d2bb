// Package power implements the Monte-Carlo power-analysis harness: repeated
// interleave-click-tally trials, the two-proportion sample-size formula, and
// the ΔERR effect-size bins that aggregate the estimates.
package power

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/rankeval/ileval/internal/clickmodel"
	"github.com/rankeval/ileval/internal/interleave"
	"github.com/rankeval/ileval/internal/ranking"
)

// SimulateOptions tunes a Simulate call. Zero values select defaults.
type SimulateOptions struct {
	// Depth is the interleaved list length; 0 selects interleave.DefaultDepth.
	Depth int
	// Seed is the base seed; trial t draws from Seed+t, so results are
	// reproducible regardless of worker count.
	Seed int64
	// Workers fans trials out over that many goroutines; <=1 runs serially.
	Workers int
}

// Simulate runs the given number of interleave+click trials over one ranking
// pair and returns the proportion of trials won by the experimental ranker E.
// A tie, including the zero-click impression, credits half a win to each
// side rather than discarding the trial.
func Simulate(ctx context.Context, pair ranking.Pair, trials int, il interleave.Interleaver, model clickmodel.Model, opts SimulateOptions) (float64, error) {
	if trials <= 0 {
		return 0, fmt.Errorf("power: trials must be positive, got %d", trials)
	}
	depth := opts.Depth
	if depth <= 0 {
		depth = interleave.DefaultDepth
	}

	workers := opts.Workers
	if workers <= 1 {
		wins, err := runTrials(ctx, pair, 0, trials, il, model, depth, opts.Seed)
		if err != nil {
			return 0, err
		}
		return wins[interleave.TeamE] / (wins[interleave.TeamP] + wins[interleave.TeamE]), nil
	}

	// Win sums are associative, so per-worker partial tallies over disjoint
	// trial ranges reduce to the same totals as a serial run.
	partials := make([][2]float64, workers)
	g, ctx := errgroup.WithContext(ctx)
	chunk := (trials + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > trials {
			hi = trials
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			wins, err := runTrials(ctx, pair, lo, hi, il, model, depth, opts.Seed)
			if err != nil {
				return err
			}
			partials[w] = wins
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var wins [2]float64
	for _, p := range partials {
		wins[0] += p[0]
		wins[1] += p[1]
	}
	return wins[interleave.TeamE] / (wins[interleave.TeamP] + wins[interleave.TeamE]), nil
}

// runTrials executes trials [lo, hi) and returns the partial win tallies.
func runTrials(ctx context.Context, pair ranking.Pair, lo, hi int, il interleave.Interleaver, model clickmodel.Model, depth int, seed int64) ([2]float64, error) {
	var wins [2]float64
	for t := lo; t < hi; t++ {
		if err := ctx.Err(); err != nil {
			return wins, err
		}
		rng := rand.New(rand.NewSource(seed + int64(t)))

		entries := il.Interleave(pair, depth, rng)
		clicks, err := model.SimulateClicks(interleave.Grades(entries), rng)
		if err != nil {
			return wins, err
		}

		var pClicks, eClicks int
		for _, idx := range clicks {
			if entries[idx].Team == interleave.TeamE {
				eClicks++
			} else {
				pClicks++
			}
		}
		switch {
		case eClicks > pClicks:
			wins[interleave.TeamE]++
		case pClicks > eClicks:
			wins[interleave.TeamP]++
		default:
			wins[interleave.TeamP] += 0.5
			wins[interleave.TeamE] += 0.5
		}
	}
	return wins, nil
}
