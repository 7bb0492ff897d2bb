// Package clickmodel implements the user click-behavior models fitted from
// historical click logs and used to simulate impressions on interleaved
// result lists.
package clickmodel

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-viper/mapstructure/v2"

	"github.com/rankeval/ileval/internal/clicklog"
)

// ErrUntrained is returned when a model is asked for probabilities or clicks
// before Learn has fitted its parameters.
var ErrUntrained = errors.New("clickmodel: model untrained, call Learn first")

// Model is the click-behavior contract: fit parameters from a log, expose
// per-position click probabilities for a ranked relevance sequence, and draw
// stochastic click events from them.
type Model interface {
	Name() string
	Learn(events []clicklog.Event) error
	ClickProbabilities(grades []int) ([]float64, error)
	SimulateClicks(grades []int, rng *rand.Rand) ([]int, error)
}

// Kind names for the factory.
const (
	KindRandom   = "random"
	KindPosition = "position"
)

// New builds a model of the given kind, decoding strategy-specific parameters
// from the config map.
func New(kind string, params map[string]any) (Model, error) {
	switch kind {
	case KindRandom:
		return NewRandomModel(), nil
	case KindPosition:
		var opts PositionOptions
		if err := mapstructure.Decode(params, &opts); err != nil {
			return nil, fmt.Errorf("clickmodel: position model params: %w", err)
		}
		return NewPositionModel(opts), nil
	default:
		return nil, fmt.Errorf("clickmodel: unknown model kind %q", kind)
	}
}

// drawClicks runs one independent Bernoulli trial per position. An all-miss
// outcome is a valid non-clicking impression; forcing a re-sample here would
// bias the click-through rate upward.
func drawClicks(probs []float64, rng *rand.Rand) []int {
	var clicked []int
	for i, p := range probs {
		if rng.Float64() < p {
			clicked = append(clicked, i)
		}
	}
	return clicked
}
