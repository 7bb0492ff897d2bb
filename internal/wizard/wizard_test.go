package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rankeval/ileval/internal/config"
)

func TestGenerateExperimentYAML(t *testing.T) {
	spec := &ExperimentSpec{
		Name:         "td-vs-prob",
		LogPath:      "./clicks.log",
		Trials:       200,
		Depth:        3,
		Models:       []string{"random", "position"},
		Interleavers: []string{"teamdraft"},
	}

	out, err := GenerateExperimentYAML(spec)
	require.NoError(t, err)

	// The generated file must survive the full load path.
	exp, err := config.Parse([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, "td-vs-prob", exp.Name)
	assert.Equal(t, "./clicks.log", exp.Log.Path)
	assert.Equal(t, 200, exp.Simulation.Trials)
	assert.Equal(t, 3, exp.Simulation.Depth)
	assert.Equal(t, 3, exp.Pairs.Length)
	require.Len(t, exp.Models, 2)
	assert.Equal(t, "position", exp.Models[1].Type)
	require.Len(t, exp.Interleavers, 1)
	assert.Equal(t, "teamdraft", exp.Interleavers[0].Type)
}

func TestValidatePositiveInt(t *testing.T) {
	assert.NoError(t, validatePositiveInt("5"))
	assert.NoError(t, validatePositiveInt(" 10 "))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("-3"))
	assert.Error(t, validatePositiveInt("many"))
}
