package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rankeval/ileval/internal/clicklog"
	"github.com/rankeval/ileval/internal/clickmodel"
	"github.com/rankeval/ileval/internal/config"
	"github.com/rankeval/ileval/internal/experiment"
)

func newLearnCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "learn <experiment.yaml>",
		Short: "Fit the configured click models and print their parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if limit > 0 {
				cfg.Log.Limit = limit
			}

			events, err := clicklog.ReadFile(cfg.Log.Path, cfg.Log.Limit)
			if err != nil {
				return err
			}

			models, err := experiment.BuildModels(cfg.Models, cfg.Simulation.Depth, events)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range models {
				switch fitted := m.(type) {
				case *clickmodel.RandomModel:
					fmt.Fprintf(out, "%s: rho = %.6f\n", m.Name(), fitted.Rho())
				case *clickmodel.PositionModel:
					fmt.Fprintf(out, "%s: epsilon = %.3f gammas = %.6f\n",
						m.Name(), fitted.Epsilon(), fitted.Gammas())
				default:
					fmt.Fprintf(out, "%s: fitted\n", m.Name())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "log-limit", 0, "Read at most this many log lines (overrides config)")

	return cmd
}
