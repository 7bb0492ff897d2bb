// Package experiment orchestrates a full evaluation grid: every configured
// click model crossed with every interleaving strategy, run over every
// generated ranking pair and its duplicate-conflict permutations.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rankeval/ileval/internal/clicklog"
	"github.com/rankeval/ileval/internal/clickmodel"
	"github.com/rankeval/ileval/internal/config"
	"github.com/rankeval/ileval/internal/interleave"
	"github.com/rankeval/ileval/internal/power"
	"github.com/rankeval/ileval/internal/ranking"
)

// EventType identifies a progress event.
type EventType string

const (
	EventLearnStart    EventType = "learn_start"
	EventLearnComplete EventType = "learn_complete"
	EventPairComplete  EventType = "pair_complete"
	EventGridComplete  EventType = "grid_complete"
)

// ProgressEvent is a progress update emitted while the grid runs.
type ProgressEvent struct {
	EventType  EventType
	Model      string
	PairNum    int
	TotalPairs int
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Cell is the bucketed outcome of one model x interleaver combination.
type Cell struct {
	Model       string                `json:"model"`
	Interleaver string                `json:"interleaver"`
	Buckets     []power.BucketSummary `json:"buckets"`
}

// Setup records the parameters the grid ran with.
type Setup struct {
	Trials int     `json:"trials"`
	Depth  int     `json:"depth"`
	Seed   int64   `json:"seed"`
	Alpha  float64 `json:"alpha"`
	Beta   float64 `json:"beta"`
	Pairs  int     `json:"pairs"`
}

// Outcome is the complete result of one experiment run.
type Outcome struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Setup     Setup     `json:"setup"`
	Cells     []Cell    `json:"cells"`
}

// Runner drives one experiment configuration to completion.
type Runner struct {
	cfg *config.Experiment

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// NewRunner creates a runner for the given experiment.
func NewRunner(cfg *config.Experiment) *Runner {
	return &Runner{cfg: cfg}
}

// OnProgress registers a progress listener.
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()
	for _, l := range listeners {
		l(event)
	}
}

// BuildModels instantiates and fits the configured click models. A position
// model without an explicit max_rank learns only as deep as the interleaving
// depth, since deeper ranks are never simulated.
func BuildModels(cfgs []config.StrategyConfig, depth int, events []clicklog.Event) ([]clickmodel.Model, error) {
	models := make([]clickmodel.Model, 0, len(cfgs))
	for _, sc := range cfgs {
		params := sc.Params
		if sc.Type == clickmodel.KindPosition {
			if _, ok := params["max_rank"]; !ok {
				withDepth := make(map[string]any, len(params)+1)
				for k, v := range params {
					withDepth[k] = v
				}
				withDepth["max_rank"] = depth
				params = withDepth
			}
		}
		m, err := clickmodel.New(sc.Type, params)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		if err := m.Learn(events); err != nil {
			return nil, fmt.Errorf("experiment: learning %s model: %w", sc.Type, err)
		}
		slog.Debug("click model fitted", "model", m.Name(), "duration", time.Since(start))
		models = append(models, m)
	}
	return models, nil
}

// BuildInterleavers instantiates the configured interleaving strategies.
func BuildInterleavers(cfgs []config.StrategyConfig) ([]interleave.Interleaver, error) {
	out := make([]interleave.Interleaver, 0, len(cfgs))
	for _, sc := range cfgs {
		il, err := interleave.New(sc.Type, sc.Params)
		if err != nil {
			return nil, err
		}
		out = append(out, il)
	}
	return out, nil
}

// observation is one sample-size estimate destined for a cell's bins.
type observation struct {
	cell  int
	delta float64
	est   power.Estimate
}

// Run fits the models on the log, generates the pair grid, and simulates
// every cell. Fitted model parameters are read-only for the duration of the
// simulation phase.
func (r *Runner) Run(ctx context.Context, events []clicklog.Event) (*Outcome, error) {
	cfg := r.cfg

	r.notifyProgress(ProgressEvent{EventType: EventLearnStart})
	models, err := BuildModels(cfg.Models, cfg.Simulation.Depth, events)
	if err != nil {
		return nil, err
	}
	r.notifyProgress(ProgressEvent{EventType: EventLearnComplete})

	ils, err := BuildInterleavers(cfg.Interleavers)
	if err != nil {
		return nil, err
	}

	pairs := r.selectPairs()
	slog.Debug("pair grid generated", "pairs", len(pairs),
		"length", cfg.Pairs.Length, "max_grade", cfg.Pairs.MaxGrade)

	bins := make([]*power.Bins, len(models)*len(ils))
	for i := range bins {
		bins[i] = power.NewBins(cfg.Simulation.Bins)
	}

	obs, err := r.runPairs(ctx, pairs, models, ils)
	if err != nil {
		return nil, err
	}
	for _, o := range obs {
		bins[o.cell].Add(o.delta, o.est)
	}
	r.notifyProgress(ProgressEvent{EventType: EventGridComplete, TotalPairs: len(pairs)})

	outcome := &Outcome{
		Name:      cfg.Name,
		Timestamp: time.Now().UTC(),
		Setup: Setup{
			Trials: cfg.Simulation.Trials,
			Depth:  cfg.Simulation.Depth,
			Seed:   cfg.Simulation.Seed,
			Alpha:  cfg.Power.Alpha,
			Beta:   cfg.Power.Beta,
			Pairs:  len(pairs),
		},
	}
	for mi, m := range models {
		for ii, il := range ils {
			outcome.Cells = append(outcome.Cells, Cell{
				Model:       m.Name(),
				Interleaver: il.Name(),
				Buckets:     bins[mi*len(ils)+ii].Summaries(),
			})
		}
	}
	return outcome, nil
}

// selectPairs generates the synthetic grid and keeps pairs whose effect size
// falls inside the configured ΔERR window.
func (r *Runner) selectPairs() []ranking.Pair {
	var kept []ranking.Pair
	for _, pair := range ranking.Pairs(r.cfg.Pairs.Length, r.cfg.Pairs.MaxGrade) {
		delta := ranking.DeltaERR(pair)
		if delta >= r.cfg.Pairs.MinDeltaERR && delta <= r.cfg.Pairs.MaxDeltaERR {
			kept = append(kept, pair)
		}
	}
	return kept
}

// runPairs evaluates every pair, optionally fanning pairs out over a bounded
// worker pool. Trials within one simulation stay serial here; the grid is
// already embarrassingly parallel across pairs.
func (r *Runner) runPairs(ctx context.Context, pairs []ranking.Pair, models []clickmodel.Model, ils []interleave.Interleaver) ([]observation, error) {
	if !r.cfg.Simulation.Parallel {
		var out []observation
		for i, pair := range pairs {
			obs, err := r.runPair(ctx, i, pair, models, ils)
			if err != nil {
				return nil, err
			}
			out = append(out, obs...)
			r.notifyProgress(ProgressEvent{EventType: EventPairComplete, PairNum: i + 1, TotalPairs: len(pairs)})
		}
		return out, nil
	}

	type result struct {
		index int
		obs   []observation
		err   error
	}

	workers := r.cfg.Simulation.Workers
	resultChan := make(chan result, len(pairs))
	semaphore := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, pair := range pairs {
		wg.Add(1)
		go func(idx int, p ranking.Pair) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			obs, err := r.runPair(ctx, idx, p, models, ils)
			resultChan <- result{index: idx, obs: obs, err: err}
			r.notifyProgress(ProgressEvent{EventType: EventPairComplete, PairNum: idx + 1, TotalPairs: len(pairs)})
		}(i, pair)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Reassemble in pair order so the reduction into bins is deterministic.
	byIndex := make([][]observation, len(pairs))
	for res := range resultChan {
		if res.err != nil {
			return nil, res.err
		}
		byIndex[res.index] = res.obs
	}
	var out []observation
	for _, obs := range byIndex {
		out = append(out, obs...)
	}
	return out, nil
}

// runPair simulates every conflict permutation of one pair across all cells.
func (r *Runner) runPair(ctx context.Context, pairIdx int, pair ranking.Pair, models []clickmodel.Model, ils []interleave.Interleaver) ([]observation, error) {
	cfg := r.cfg
	delta := ranking.DeltaERR(pair)

	var out []observation
	for permIdx, perm := range ranking.Conflicts(pair) {
		for mi, model := range models {
			for ii, il := range ils {
				cell := mi*len(ils) + ii
				opts := power.SimulateOptions{
					Depth: cfg.Simulation.Depth,
					Seed:  deriveSeed(cfg.Simulation.Seed, int64(pairIdx), int64(permIdx), int64(cell)),
				}
				p, err := power.Simulate(ctx, perm, cfg.Simulation.Trials, il, model, opts)
				if err != nil {
					return nil, err
				}
				out = append(out, observation{
					cell:  cell,
					delta: delta,
					est:   power.RequiredSampleSize(p, cfg.Power.Alpha, cfg.Power.Beta),
				})
			}
		}
	}
	return out, nil
}

// deriveSeed mixes the base seed with position indices so every simulation
// gets an independent, reproducible random stream.
func deriveSeed(base int64, parts ...int64) int64 {
	h := uint64(base)
	for _, p := range parts {
		h ^= uint64(p) + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	}
	return int64(h)
}
