package clickmodel

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/rankeval/ileval/internal/clicklog"
)

// trainingLog returns a log yielding the given rho when the result list has
// ten documents per query.
func trainingLog(clicksPerQuery int) []clicklog.Event {
	docs := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	events := []clicklog.Event{
		{SessionID: 1, Action: clicklog.ActionQuery, ActionID: 100, Docs: docs},
	}
	for i := 0; i < clicksPerQuery; i++ {
		events = append(events, clicklog.Event{SessionID: 1, Action: clicklog.ActionClick, ActionID: docs[i]})
	}
	return events
}

func TestRandomModel_Learn(t *testing.T) {
	m := NewRandomModel()
	if err := m.Learn(trainingLog(3)); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if got := m.Rho(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("rho = %f, want 0.3", got)
	}
}

func TestRandomModel_Untrained(t *testing.T) {
	m := NewRandomModel()
	if _, err := m.ClickProbabilities([]int{0, 1}); !errors.Is(err, ErrUntrained) {
		t.Errorf("expected ErrUntrained, got %v", err)
	}
	if _, err := m.SimulateClicks([]int{0, 1}, rand.New(rand.NewSource(1))); !errors.Is(err, ErrUntrained) {
		t.Errorf("expected ErrUntrained, got %v", err)
	}
}

func TestRandomModel_MalformedLog(t *testing.T) {
	m := NewRandomModel()
	err := m.Learn([]clicklog.Event{{SessionID: 1, Action: clicklog.ActionClick, ActionID: 5}})
	var malformed *clicklog.MalformedLogError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedLogError, got %v", err)
	}
}

func TestRandomModel_ProbabilitiesIgnoreRelevance(t *testing.T) {
	m := NewRandomModel()
	if err := m.Learn(trainingLog(3)); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	probs, err := m.ClickProbabilities([]int{0, 3, 1})
	if err != nil {
		t.Fatalf("ClickProbabilities: %v", err)
	}
	if len(probs) != 3 {
		t.Fatalf("got %d probabilities, want 3", len(probs))
	}
	for i, p := range probs {
		if p != 0.3 {
			t.Errorf("probs[%d] = %f, want 0.3", i, p)
		}
	}
}

func TestRandomModel_EmpiricalClickRate(t *testing.T) {
	m := NewRandomModel()
	if err := m.Learn(trainingLog(3)); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	const trials = 100000
	grades := make([]int, 10)
	rng := rand.New(rand.NewSource(42))

	totalClicks := 0
	emptyOutcomes := 0
	for i := 0; i < trials; i++ {
		clicks, err := m.SimulateClicks(grades, rng)
		if err != nil {
			t.Fatalf("SimulateClicks: %v", err)
		}
		totalClicks += len(clicks)
		if len(clicks) == 0 {
			emptyOutcomes++
		}
	}

	rate := float64(totalClicks) / float64(trials*10)
	if math.Abs(rate-0.3) > 0.01 {
		t.Errorf("empirical click rate = %f, want 0.3 +/- 0.01", rate)
	}

	// The all-miss impression is a valid outcome; its frequency must match
	// (1-rho)^10, which a forced-resample implementation would drive to zero.
	wantEmpty := math.Pow(0.7, 10)
	emptyRate := float64(emptyOutcomes) / float64(trials)
	if math.Abs(emptyRate-wantEmpty) > 0.01 {
		t.Errorf("empty-click frequency = %f, want %f +/- 0.01", emptyRate, wantEmpty)
	}
}
