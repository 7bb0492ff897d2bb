package clickmodel

import (
	"fmt"
	"math/rand"

	"github.com/rankeval/ileval/internal/clicklog"
)

// RandomModel assumes every shown document is clicked with the same global
// probability rho, estimated as total clicks over total documents shown.
type RandomModel struct {
	rho     float64
	trained bool
}

// NewRandomModel returns an unfitted random click model.
func NewRandomModel() *RandomModel {
	return &RandomModel{}
}

func (m *RandomModel) Name() string { return KindRandom }

// Rho returns the fitted global click probability.
func (m *RandomModel) Rho() float64 { return m.rho }

// Learn estimates rho over the whole log.
func (m *RandomModel) Learn(events []clicklog.Event) error {
	imps, err := clicklog.Impressions(events)
	if err != nil {
		return err
	}
	docs, clicks := 0, 0
	for _, imp := range imps {
		docs += len(imp.Docs)
		clicks += len(imp.Clicks)
	}
	if docs == 0 {
		return fmt.Errorf("clickmodel: log contains no query events")
	}
	m.rho = float64(clicks) / float64(docs)
	m.trained = true
	return nil
}

// ClickProbabilities returns rho once per document, independent of relevance.
func (m *RandomModel) ClickProbabilities(grades []int) ([]float64, error) {
	if !m.trained {
		return nil, ErrUntrained
	}
	probs := make([]float64, len(grades))
	for i := range probs {
		probs[i] = m.rho
	}
	return probs, nil
}

// SimulateClicks draws one Bernoulli(rho) trial per position.
func (m *RandomModel) SimulateClicks(grades []int, rng *rand.Rand) ([]int, error) {
	probs, err := m.ClickProbabilities(grades)
	if err != nil {
		return nil, err
	}
	return drawClicks(probs, rng), nil
}
