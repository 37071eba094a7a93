package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/rangequery/logging"
	"github.com/wyfcoding/rangequery/segtree"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rangequery",
		Short:        "Segment-tree range min/max/sum queries over an integer sequence",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newQueryCmd(),
		newPrintCmd(),
		newCheckCmd(),
	)
	return root
}

// cliLogger 命令行子命令的日志写到 stderr，避免与结果输出混在一起。
func cliLogger(cmd *cobra.Command, level string) *slog.Logger {
	return logging.NewWithWriter(logging.Config{
		Service: "rangequery",
		Module:  cmd.Name(),
		Level:   level,
	}, cmd.ErrOrStderr()).Logger
}

// sequenceFlags 为 query 与 print 共享的输入参数。
type sequenceFlags struct {
	values []int64
	repr   string
}

func (f *sequenceFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64SliceVar(&f.values, "values", nil, "comma separated input sequence, e.g. 1,2,3")
	cmd.Flags().StringVar(&f.repr, "repr", "array", "tree representation: array or node")
	_ = cmd.MarkFlagRequired("values")
}

func (f *sequenceFlags) representation() (segtree.Representation, error) {
	return segtree.ParseRepresentation(f.repr)
}
