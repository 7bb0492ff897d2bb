// Package config loads and validates experiment.yaml files.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rankeval/ileval/internal/interleave"
	"github.com/rankeval/ileval/internal/power"
)

// Default values for experiment configuration. These are the single source of
// truth; ApplyDefaults references them and no other code should duplicate them.
const (
	DefaultTrials      = 100
	DefaultWorkers     = 4
	DefaultPairLength  = 3
	DefaultMaxGrade    = 1
	DefaultMinDeltaERR = 0.05
	DefaultMaxDeltaERR = 0.95
	DefaultLogLimit    = -1
)

// Experiment is the top-level configuration of one evaluation run.
type Experiment struct {
	Name         string           `yaml:"name"`
	Log          LogConfig        `yaml:"log"`
	Simulation   SimulationConfig `yaml:"simulation"`
	Pairs        PairsConfig      `yaml:"pairs"`
	Power        PowerConfig      `yaml:"power"`
	Models       []StrategyConfig `yaml:"models"`
	Interleavers []StrategyConfig `yaml:"interleavers"`
}

// LogConfig locates the historical click log the models learn from.
type LogConfig struct {
	Path string `yaml:"path"`
	// Limit caps the number of log lines read; negative reads everything.
	Limit int `yaml:"limit"`
}

// SimulationConfig controls the Monte-Carlo harness.
type SimulationConfig struct {
	Depth    int   `yaml:"depth"`
	Trials   int   `yaml:"trials"`
	Bins     int   `yaml:"bins"`
	Seed     int64 `yaml:"seed"`
	Parallel bool  `yaml:"parallel"`
	Workers  int   `yaml:"workers"`
}

// PairsConfig controls the synthetic ranking-pair generator.
type PairsConfig struct {
	Length      int     `yaml:"length"`
	MaxGrade    int     `yaml:"max_grade"`
	MinDeltaERR float64 `yaml:"min_delta_err"`
	MaxDeltaERR float64 `yaml:"max_delta_err"`
}

// PowerConfig holds the two-proportion test parameters.
type PowerConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// StrategyConfig selects one click model or interleaving strategy by kind,
// with strategy-specific parameters decoded by the matching factory.
type StrategyConfig struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"config,omitempty"`
}

// Load reads, schema-validates, and decodes an experiment file, then applies
// defaults and semantic validation.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is Load over raw YAML bytes.
func Parse(data []byte) (*Experiment, error) {
	if errs := validateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("config: schema validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	var exp Experiment
	exp.Log.Limit = DefaultLogLimit
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	exp.ApplyDefaults()
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

// ApplyDefaults fills zero values with the package defaults.
func (e *Experiment) ApplyDefaults() {
	if e.Simulation.Depth <= 0 {
		e.Simulation.Depth = interleave.DefaultDepth
	}
	if e.Simulation.Trials <= 0 {
		e.Simulation.Trials = DefaultTrials
	}
	if e.Simulation.Bins <= 0 {
		e.Simulation.Bins = power.DefaultBins
	}
	if e.Simulation.Workers <= 0 {
		e.Simulation.Workers = DefaultWorkers
	}
	if e.Pairs.Length <= 0 {
		e.Pairs.Length = DefaultPairLength
	}
	if e.Pairs.MaxGrade <= 0 {
		e.Pairs.MaxGrade = DefaultMaxGrade
	}
	if e.Pairs.MinDeltaERR == 0 && e.Pairs.MaxDeltaERR == 0 {
		e.Pairs.MinDeltaERR = DefaultMinDeltaERR
		e.Pairs.MaxDeltaERR = DefaultMaxDeltaERR
	}
	if e.Power.Alpha == 0 {
		e.Power.Alpha = power.DefaultAlpha
	}
	if e.Power.Beta == 0 {
		e.Power.Beta = power.DefaultBeta
	}
	if len(e.Models) == 0 {
		e.Models = []StrategyConfig{{Type: "random"}, {Type: "position"}}
	}
	if len(e.Interleavers) == 0 {
		e.Interleavers = []StrategyConfig{{Type: "teamdraft"}, {Type: "probabilistic"}}
	}
}

// Validate checks cross-field constraints the schema cannot express.
func (e *Experiment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	if e.Pairs.MinDeltaERR > e.Pairs.MaxDeltaERR {
		return fmt.Errorf("config: min_delta_err %.3f exceeds max_delta_err %.3f",
			e.Pairs.MinDeltaERR, e.Pairs.MaxDeltaERR)
	}
	if e.Simulation.Depth > e.Pairs.Length {
		return fmt.Errorf("config: interleaving depth %d exceeds ranking length %d",
			e.Simulation.Depth, e.Pairs.Length)
	}
	return nil
}
