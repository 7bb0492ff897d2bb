// Package wizard implements the interactive `ileval init` form that collects
// experiment settings and renders a starter experiment.yaml.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ExperimentSpec holds the fields collected during the interactive wizard.
type ExperimentSpec struct {
	Name         string
	LogPath      string
	Trials       int
	Depth        int
	Models       []string
	Interleavers []string
}

const experimentYAMLTemplate = `name: {{ .Name }}

log:
  path: {{ .LogPath }}
  limit: -1

simulation:
  depth: {{ .Depth }}
  trials: {{ .Trials }}
  bins: 10
  seed: 42
  parallel: true
  workers: 4

pairs:
  length: {{ .Depth }}
  max_grade: 1
  min_delta_err: 0.05
  max_delta_err: 0.95

power:
  alpha: 0.05
  beta: 0.10

models:
{{- range .Models }}
  - type: {{ . }}
{{- end }}

interleavers:
{{- range .Interleavers }}
  - type: {{ . }}
{{- end }}
`

// RunExperimentWizard runs an interactive huh form to collect experiment
// settings. If initialName is non-empty, it pre-populates the name field.
func RunExperimentWizard(in io.Reader, out io.Writer, initialName string) (*ExperimentSpec, error) {
	var (
		name         = initialName
		logPath      = "./YandexRelPredChallenge.txt"
		trialsRaw    = "100"
		depthRaw     = "3"
		models       []string
		interleavers []string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Experiment name").
				Placeholder("td-vs-prob").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Click log path").
				Description("Tab-separated session log the click models learn from").
				Value(&logPath),
			huh.NewInput().
				Title("Trials per simulation").
				Value(&trialsRaw).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Interleaving depth").
				Value(&depthRaw).
				Validate(validatePositiveInt),
			huh.NewMultiSelect[string]().
				Title("Click models").
				Options(
					huh.NewOption("random", "random").Selected(true),
					huh.NewOption("position", "position").Selected(true),
				).
				Value(&models),
			huh.NewMultiSelect[string]().
				Title("Interleaving strategies").
				Options(
					huh.NewOption("teamdraft", "teamdraft").Selected(true),
					huh.NewOption("probabilistic", "probabilistic").Selected(true),
				).
				Value(&interleavers),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	trials, _ := strconv.Atoi(strings.TrimSpace(trialsRaw))
	depth, _ := strconv.Atoi(strings.TrimSpace(depthRaw))

	return &ExperimentSpec{
		Name:         strings.TrimSpace(name),
		LogPath:      strings.TrimSpace(logPath),
		Trials:       trials,
		Depth:        depth,
		Models:       models,
		Interleavers: interleavers,
	}, nil
}

// GenerateExperimentYAML renders an experiment.yaml from the given spec.
func GenerateExperimentYAML(spec *ExperimentSpec) (string, error) {
	tmpl, err := template.New("experiment").Parse(experimentYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}
