package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rankeval/ileval/internal/clicklog"
	"github.com/rankeval/ileval/internal/config"
	"github.com/rankeval/ileval/internal/experiment"
	"github.com/rankeval/ileval/internal/reporting"
)

var (
	outputPath string
	verbose    bool
	parallel   bool
	workers    int
	trials     int
	seed       int64
	logLimit   int
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <experiment.yaml>",
		Short: "Run a full power-analysis experiment",
		Long: `Run a power-analysis experiment from a config file.

The config defines the click log, the click models and interleaving
strategies to cross, the synthetic pair grid, and the simulation and
power-test parameters. Results are printed as one dERR bucket table per
model/interleaver cell.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-pair progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run pairs concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (requires --parallel)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Trials per simulation (overrides config)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Base random seed (overrides config)")
	cmd.Flags().IntVar(&logLimit, "log-limit", 0, "Read at most this many log lines (overrides config)")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	// CLI flags override config
	if parallel {
		cfg.Simulation.Parallel = true
	}
	if workers > 0 {
		cfg.Simulation.Workers = workers
	}
	if trials > 0 {
		cfg.Simulation.Trials = trials
	}
	if seed >= 0 {
		cfg.Simulation.Seed = seed
	}
	if logLimit > 0 {
		cfg.Log.Limit = logLimit
	}

	events, err := clicklog.ReadFile(cfg.Log.Path, cfg.Log.Limit)
	if err != nil {
		return err
	}

	runner := experiment.NewRunner(cfg)
	out := cmd.OutOrStdout()
	runner.OnProgress(func(ev experiment.ProgressEvent) {
		switch ev.EventType {
		case experiment.EventLearnStart:
			fmt.Fprintf(out, "Fitting click models on %d log events...\n", len(events))
		case experiment.EventPairComplete:
			if verbose {
				fmt.Fprintf(out, "  pair %d/%d done\n", ev.PairNum, ev.TotalPairs)
			}
		}
	})

	outcome, err := runner.Run(cmd.Context(), events)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, reporting.FormatText(outcome))

	if outputPath != "" {
		if err := reporting.SaveJSON(outputPath, outcome); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResults written to %s\n", outputPath)
	}
	return nil
}
