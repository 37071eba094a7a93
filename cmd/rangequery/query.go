package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/rangequery/analyzer"
	"github.com/wyfcoding/rangequery/segtree"
)

func newQueryCmd() *cobra.Command {
	var (
		seq       sequenceFlags
		aggregate string
		left      int
		right     int
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query an aggregate over the inclusive range [left, right]",
		Example: `  rangequery query --values 10,15,55,15,9,12 --aggregate max --left 0 --right 5
  rangequery query --values 1,2,3 --aggregate all --left 0 --right 2 --repr node`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := seq.representation()
			if err != nil {
				return err
			}
			a, err := analyzer.New(seq.values, rep, analyzer.WithLogger(cliLogger(cmd, "warn")))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if strings.EqualFold(aggregate, "all") {
				s, err := a.Summary(left, right)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "min=%d max=%d sum=%d\n", s.Min, s.Max, s.Sum)
				return nil
			}
			kind, err := segtree.ParseKind(aggregate)
			if err != nil {
				return err
			}
			v, err := a.Query(kind, left, right)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s[%d,%d] = %d\n", kind, left, right, v)
			return nil
		},
	}
	seq.register(cmd)
	cmd.Flags().StringVar(&aggregate, "aggregate", "sum", "aggregate: min, max, sum or all")
	cmd.Flags().IntVar(&left, "left", 0, "left bound (inclusive)")
	cmd.Flags().IntVar(&right, "right", 0, "right bound (inclusive)")
	return cmd
}

func newPrintCmd() *cobra.Command {
	var (
		seq       sequenceFlags
		aggregate string
	)
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the debug string form of the trees",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := seq.representation()
			if err != nil {
				return err
			}
			kinds := segtree.Kinds
			if aggregate != "" && !strings.EqualFold(aggregate, "all") {
				kind, err := segtree.ParseKind(aggregate)
				if err != nil {
					return err
				}
				kinds = []segtree.Kind{kind}
			}

			logger := cliLogger(cmd, "warn")
			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				t, err := segtree.New(rep, kind, seq.values, segtree.WithLogger(logger))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s/%s:%s\n", rep, kind, t.String())
			}
			return nil
		},
	}
	seq.register(cmd)
	cmd.Flags().StringVar(&aggregate, "aggregate", "all", "aggregate: min, max, sum or all")
	return cmd
}
