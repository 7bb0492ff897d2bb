package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rankeval/ileval/internal/config"
	"github.com/rankeval/ileval/internal/ranking"
)

func newPairsCommand() *cobra.Command {
	var showConflicts bool

	cmd := &cobra.Command{
		Use:   "pairs <experiment.yaml>",
		Short: "Enumerate the synthetic ranking pairs an experiment would evaluate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			kept := 0
			for _, pair := range ranking.Pairs(cfg.Pairs.Length, cfg.Pairs.MaxGrade) {
				delta := ranking.DeltaERR(pair)
				if delta < cfg.Pairs.MinDeltaERR || delta > cfg.Pairs.MaxDeltaERR {
					continue
				}
				kept++
				fmt.Fprintf(out, "P=%v E=%v dERR=%.4f", pair.P.Grades(), pair.E.Grades(), delta)
				if showConflicts {
					fmt.Fprintf(out, " conflicts=%d", len(ranking.Conflicts(pair)))
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d pairs inside dERR window [%.3f, %.3f]\n",
				kept, cfg.Pairs.MinDeltaERR, cfg.Pairs.MaxDeltaERR)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showConflicts, "conflicts", false, "Also count duplicate-conflict permutations per pair")

	return cmd
}
