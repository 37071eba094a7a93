package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/rangequery/checker"
)

func newCheckCmd() *cobra.Command {
	var cfg checker.Config
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Cross-check array and node trees against a brute-force oracle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := checker.Check(cmd.Context(), cfg, checker.WithLogger(cliLogger(cmd, "error")))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "instances=%d queries=%d updates=%d rejected=%d mismatches=%d elapsed=%s\n",
				rep.Instances, rep.Queries, rep.Updates, rep.Rejected, len(rep.Mismatches), rep.Elapsed)
			for _, m := range rep.Mismatches {
				fmt.Fprintln(out, "  "+m.String())
			}
			if !rep.OK() {
				return fmt.Errorf("found %d mismatches", len(rep.Mismatches))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.Size, "size", 1000, "sequence length")
	cmd.Flags().IntVar(&cfg.Ops, "ops", 10000, "operations per instance and aggregate")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 4, "concurrent workers")
	cmd.Flags().IntVar(&cfg.Instances, "instances", 0, "independent instances, defaults to workers")
	cmd.Flags().Int64Var(&cfg.MaxValue, "max-value", 1000, "random values are drawn from [-max-value, max-value]")
	return cmd
}
