package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankeval/ileval/internal/interleave"
	"github.com/rankeval/ileval/internal/power"
)

func TestParse_MinimalDefaults(t *testing.T) {
	exp, err := Parse([]byte("name: smoke\n"))
	require.NoError(t, err)

	assert.Equal(t, "smoke", exp.Name)
	assert.Equal(t, interleave.DefaultDepth, exp.Simulation.Depth)
	assert.Equal(t, DefaultTrials, exp.Simulation.Trials)
	assert.Equal(t, power.DefaultBins, exp.Simulation.Bins)
	assert.Equal(t, DefaultWorkers, exp.Simulation.Workers)
	assert.Equal(t, DefaultPairLength, exp.Pairs.Length)
	assert.Equal(t, DefaultMaxGrade, exp.Pairs.MaxGrade)
	assert.InDelta(t, DefaultMinDeltaERR, exp.Pairs.MinDeltaERR, 1e-12)
	assert.InDelta(t, DefaultMaxDeltaERR, exp.Pairs.MaxDeltaERR, 1e-12)
	assert.InDelta(t, power.DefaultAlpha, exp.Power.Alpha, 1e-12)
	assert.InDelta(t, power.DefaultBeta, exp.Power.Beta, 1e-12)
	assert.Equal(t, DefaultLogLimit, exp.Log.Limit)

	require.Len(t, exp.Models, 2)
	assert.Equal(t, "random", exp.Models[0].Type)
	assert.Equal(t, "position", exp.Models[1].Type)
	require.Len(t, exp.Interleavers, 2)
	assert.Equal(t, "teamdraft", exp.Interleavers[0].Type)
	assert.Equal(t, "probabilistic", exp.Interleavers[1].Type)
}

func TestParse_FullDocument(t *testing.T) {
	doc := `
name: full
log:
  path: testdata/click.log
  limit: 500
simulation:
  depth: 2
  trials: 250
  bins: 5
  seed: 99
  parallel: true
  workers: 8
pairs:
  length: 2
  max_grade: 2
  min_delta_err: 0.1
  max_delta_err: 0.8
power:
  alpha: 0.01
  beta: 0.2
models:
  - type: position
    config:
      epsilon: 0.2
interleavers:
  - type: probabilistic
    config:
      tau: 2
`
	exp, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "testdata/click.log", exp.Log.Path)
	assert.Equal(t, 500, exp.Log.Limit)
	assert.Equal(t, 2, exp.Simulation.Depth)
	assert.Equal(t, 250, exp.Simulation.Trials)
	assert.Equal(t, 5, exp.Simulation.Bins)
	assert.Equal(t, int64(99), exp.Simulation.Seed)
	assert.True(t, exp.Simulation.Parallel)
	assert.Equal(t, 8, exp.Simulation.Workers)
	assert.Equal(t, 2, exp.Pairs.MaxGrade)
	assert.InDelta(t, 0.01, exp.Power.Alpha, 1e-12)

	require.Len(t, exp.Models, 1)
	assert.Equal(t, "position", exp.Models[0].Type)
	assert.Equal(t, 0.2, exp.Models[0].Params["epsilon"])
	require.Len(t, exp.Interleavers, 1)
	assert.Equal(t, "probabilistic", exp.Interleavers[0].Type)
}

func TestParse_SchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing_name", "log:\n  path: x\n"},
		{"empty_name", "name: \"\"\n"},
		{"negative_trials", "name: x\nsimulation:\n  trials: -5\n"},
		{"zero_depth", "name: x\nsimulation:\n  depth: 0\n"},
		{"unknown_top_level_key", "name: x\nbogus: 1\n"},
		{"unknown_simulation_key", "name: x\nsimulation:\n  speed: 9\n"},
		{"strategy_missing_type", "name: x\nmodels:\n  - config:\n      epsilon: 0.1\n"},
		{"delta_out_of_range", "name: x\npairs:\n  min_delta_err: 1.5\n"},
		{"alpha_at_zero", "name: x\npower:\n  alpha: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParse_SemanticRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"depth_exceeds_length",
			"name: x\nsimulation:\n  depth: 4\npairs:\n  length: 3\n",
			"depth 4 exceeds ranking length 3",
		},
		{
			"inverted_delta_window",
			"name: x\npairs:\n  min_delta_err: 0.9\n  max_delta_err: 0.2\n",
			"min_delta_err",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
