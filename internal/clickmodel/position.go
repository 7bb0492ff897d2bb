package clickmodel

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/rankeval/ileval/internal/clicklog"
)

// Defaults for the position-based model.
const (
	DefaultEpsilon      = 0.1
	DefaultDecimals     = 3
	DefaultStablePasses = 5
	DefaultMaxPasses    = 1000
)

// PositionOptions configures a PositionModel. Zero values select defaults.
type PositionOptions struct {
	// Epsilon is the residual click probability on irrelevant documents and
	// residual skip probability on relevant ones.
	Epsilon float64 `mapstructure:"epsilon"`
	// Decimals is the rounding precision used for convergence detection.
	Decimals int `mapstructure:"decimals"`
	// StablePasses is how many consecutive passes the rounded gammas must
	// stay unchanged before learning stops.
	StablePasses int `mapstructure:"stable_passes"`
	// MaxRank limits how many ranks are learned; 0 learns every rank seen.
	MaxRank int `mapstructure:"max_rank"`
	// MaxPasses bounds the EM loop as a safety net; 0 selects the default.
	MaxPasses int `mapstructure:"max_passes"`
	// Seed drives the random initialization of the gammas.
	Seed int64 `mapstructure:"seed"`
}

func (o *PositionOptions) applyDefaults() {
	if o.Epsilon <= 0 || o.Epsilon >= 1 {
		o.Epsilon = DefaultEpsilon
	}
	if o.Decimals <= 0 {
		o.Decimals = DefaultDecimals
	}
	if o.StablePasses <= 0 {
		o.StablePasses = DefaultStablePasses
	}
	if o.MaxPasses <= 0 {
		o.MaxPasses = DefaultMaxPasses
	}
}

// PositionModel learns one examination probability per rank with
// expectation-maximization over the click log. Document attractiveness is
// collapsed to a fixed epsilon noise constant, so the only free parameters
// are the gammas.
type PositionModel struct {
	opts    PositionOptions
	gammas  []float64
	trained bool
}

// NewPositionModel returns an unfitted position-based click model.
func NewPositionModel(opts PositionOptions) *PositionModel {
	opts.applyDefaults()
	return &PositionModel{opts: opts}
}

func (m *PositionModel) Name() string { return KindPosition }

// Gammas returns a copy of the fitted per-rank examination probabilities.
func (m *PositionModel) Gammas() []float64 {
	out := make([]float64, len(m.gammas))
	copy(out, m.gammas)
	return out
}

// Epsilon returns the configured noise constant.
func (m *PositionModel) Epsilon() float64 { return m.opts.Epsilon }

// Learn runs EM passes over the full log until the rounded gamma vector is
// unchanged for StablePasses consecutive passes.
func (m *PositionModel) Learn(events []clicklog.Event) error {
	imps, err := clicklog.Impressions(events)
	if err != nil {
		return err
	}
	if len(imps) == 0 {
		return fmt.Errorf("clickmodel: log contains no query events")
	}

	rng := rand.New(rand.NewSource(m.opts.Seed))
	m.gammas = nil

	// Trailing window of rounded gamma vectors for convergence detection.
	history := make([][]float64, 0, m.opts.StablePasses)

	for pass := 1; ; pass++ {
		if pass > m.opts.MaxPasses {
			return fmt.Errorf("clickmodel: EM did not converge within %d passes", m.opts.MaxPasses)
		}
		m.pass(imps, rng)

		rounded := roundAll(m.gammas, m.opts.Decimals)
		history = append(history, rounded)
		if len(history) > m.opts.StablePasses {
			history = history[1:]
		}
		slog.Debug("EM pass complete", "pass", pass, "gammas", rounded)
		if len(history) == m.opts.StablePasses && allEqual(history) {
			break
		}
	}

	m.trained = true
	return nil
}

// pass re-estimates the gammas from one sweep over the impressions. A clicked
// document contributes a full examination count; an unclicked one contributes
// the expected probability it was examined but skipped under the noisy click
// assumption.
func (m *PositionModel) pass(imps []clicklog.Impression, rng *rand.Rand) {
	attract := 1 - m.opts.Epsilon
	var sums []float64

	for _, imp := range imps {
		docs := imp.Docs
		if m.opts.MaxRank > 0 && len(docs) > m.opts.MaxRank {
			docs = docs[:m.opts.MaxRank]
		}
		for len(m.gammas) < len(docs) {
			m.gammas = append(m.gammas, rng.Float64())
		}
		for len(sums) < len(docs) {
			sums = append(sums, 0)
		}
		for r, docID := range docs {
			if imp.Clicked(docID) {
				sums[r]++
			} else {
				g := m.gammas[r]
				sums[r] += g * (1 - attract) / (1 - g*attract)
			}
		}
	}

	// Add-one smoothed average over all query impressions.
	n := float64(len(imps))
	for r := range sums {
		m.gammas[r] = (sums[r] + 1) / (n + 1)
	}
}

// ClickProbabilities returns gamma[r]*(1-epsilon) for relevant documents and
// gamma[r]*epsilon for irrelevant ones, truncated to the learned rank depth.
func (m *PositionModel) ClickProbabilities(grades []int) ([]float64, error) {
	if !m.trained {
		return nil, ErrUntrained
	}
	n := len(m.gammas)
	if len(grades) < n {
		n = len(grades)
	}
	probs := make([]float64, n)
	for i := 0; i < n; i++ {
		if grades[i] > 0 {
			probs[i] = m.gammas[i] * (1 - m.opts.Epsilon)
		} else {
			probs[i] = m.gammas[i] * m.opts.Epsilon
		}
	}
	return probs, nil
}

// SimulateClicks draws one independent Bernoulli trial per position.
func (m *PositionModel) SimulateClicks(grades []int, rng *rand.Rand) ([]int, error) {
	probs, err := m.ClickProbabilities(grades)
	if err != nil {
		return nil, err
	}
	return drawClicks(probs, rng), nil
}

func roundAll(values []float64, decimals int) []float64 {
	scale := math.Pow(10, float64(decimals))
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Round(v*scale) / scale
	}
	return out
}

func allEqual(history [][]float64) bool {
	first := history[0]
	for _, vec := range history[1:] {
		if len(vec) != len(first) {
			return false
		}
		for i := range vec {
			if vec[i] != first[i] {
				return false
			}
		}
	}
	return true
}
