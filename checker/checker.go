// Package checker 随机化校验两种树表示的行为一致性。
//
// 每个实例对每种聚合分别构建数组树与节点树，施加同一串随机更新与查询，
// 并与暴力计算结果逐一比对。实例之间互不共享树，由 conc 协程池并行执行。
package checker

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/xerrors"
)

// Config 校验参数。
type Config struct {
	Size      int    // 序列长度
	Ops       int    // 每个实例每种聚合的操作数
	Seed      uint64 // 随机种子，相同种子结果可复现
	Workers   int    // 并发协程数，<= 0 时为 1
	Instances int    // 实例数，<= 0 时等于 Workers
	MaxValue  int64  // 随机值取自 [-MaxValue, MaxValue]，<= 0 时为 1000，上限 maxValueLimit
}

// maxValueLimit 保证 2*MaxValue+1 不溢出 int64。
const maxValueLimit = (math.MaxInt64 - 1) / 2

// Mismatch 一次不一致的观测。
type Mismatch struct {
	Instance int
	Kind     segtree.Kind
	Op       string
	Left     int
	Right    int
	Want     int64
	Array    int64
	Node     int64
	Err      string
}

func (m Mismatch) String() string {
	if m.Err != "" {
		return fmt.Sprintf("instance %d %s %s [%d,%d]: %s", m.Instance, m.Kind, m.Op, m.Left, m.Right, m.Err)
	}
	return fmt.Sprintf("instance %d %s %s [%d,%d]: want %d, array %d, node %d",
		m.Instance, m.Kind, m.Op, m.Left, m.Right, m.Want, m.Array, m.Node)
}

// Report 汇总所有实例的结果。
type Report struct {
	Instances  int
	Queries    int
	Updates    int
	Rejected   int
	Mismatches []Mismatch
	Elapsed    time.Duration
}

// OK 在没有任何不一致时返回 true。
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

type result struct {
	instance   int
	kind       segtree.Kind
	queries    int
	updates    int
	rejected   int
	mismatches []Mismatch
}

// Option 配置 Check。
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger 设置日志输出，越界更新产生的告警日志也写入该 logger。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func (c *Config) normalize() error {
	if c.Size < 1 {
		return xerrors.InvalidParams(fmt.Errorf("size must be >= 1, got %d", c.Size))
	}
	if c.Ops < 0 {
		return xerrors.InvalidParams(fmt.Errorf("ops must be >= 0, got %d", c.Ops))
	}
	if c.MaxValue > maxValueLimit {
		return xerrors.InvalidParams(fmt.Errorf("max value must be <= %d, got %d", int64(maxValueLimit), c.MaxValue))
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Instances <= 0 {
		c.Instances = c.Workers
	}
	if c.MaxValue <= 0 {
		c.MaxValue = 1000
	}
	return nil
}

// Check 运行全部实例并返回汇总报告。ctx 取消时返回 ctx 的错误。
func Check(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	start := time.Now()
	p := pool.NewWithResults[result]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(cfg.Workers)
	for inst := range cfg.Instances {
		for _, kind := range segtree.Kinds {
			p.Go(func(ctx context.Context) (result, error) {
				return runInstance(ctx, cfg, inst, kind, o.logger)
			})
		}
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b result) int {
		if c := cmp.Compare(a.instance, b.instance); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})

	rep := &Report{Instances: cfg.Instances}
	for _, r := range results {
		rep.Queries += r.queries
		rep.Updates += r.updates
		rep.Rejected += r.rejected
		rep.Mismatches = append(rep.Mismatches, r.mismatches...)
	}
	rep.Elapsed = time.Since(start)

	o.logger.InfoContext(ctx, "equivalence check finished",
		"instances", rep.Instances,
		"queries", rep.Queries,
		"updates", rep.Updates,
		"mismatches", len(rep.Mismatches),
		"elapsed", rep.Elapsed,
	)
	return rep, nil
}

func runInstance(ctx context.Context, cfg Config, inst int, kind segtree.Kind, logger *slog.Logger) (result, error) {
	res := result{instance: inst, kind: kind}
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(inst)<<8|uint64(kind)))
	randValue := func() int64 { return rng.Int64N(2*cfg.MaxValue+1) - cfg.MaxValue }

	values := make([]int64, cfg.Size)
	for i := range values {
		values[i] = randValue()
	}
	arrayTree, err := segtree.New(segtree.ArrayBacked, kind, values, segtree.WithLogger(logger))
	if err != nil {
		return res, err
	}
	nodeTree, err := segtree.New(segtree.NodeBacked, kind, values, segtree.WithLogger(logger))
	if err != nil {
		return res, err
	}
	record := func(m Mismatch) {
		m.Instance, m.Kind = inst, kind
		res.mismatches = append(res.mismatches, m)
	}

	for op := range cfg.Ops {
		if op%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		switch n := rng.IntN(20); {
		case n == 0:
			// 越界更新必须被两种表示同时拒绝且不改变树
			res.rejected++
			idx := cfg.Size + rng.IntN(4)
			errA := arrayTree.Update(idx, randValue())
			errN := nodeTree.Update(idx, randValue())
			if !errors.Is(errA, xerrors.ErrIndexOutOfRange) || !errors.Is(errN, xerrors.ErrIndexOutOfRange) {
				record(Mismatch{Op: "out-of-range", Left: idx, Right: idx, Err: fmt.Sprintf("array=%v node=%v", errA, errN)})
			}
		case n < 8:
			res.updates++
			idx := rng.IntN(cfg.Size)
			v := randValue()
			values[idx] = v
			errA := arrayTree.Update(idx, v)
			errN := nodeTree.Update(idx, v)
			if errA != nil || errN != nil {
				record(Mismatch{Op: "update", Left: idx, Right: idx, Err: fmt.Sprintf("array=%v node=%v", errA, errN)})
			}
		default:
			res.queries++
			l := rng.IntN(cfg.Size)
			r := l + rng.IntN(cfg.Size-l)
			want := bruteForce(kind, values, l, r)
			gotA, errA := arrayTree.QueryRange(l, r)
			gotN, errN := nodeTree.QueryRange(l, r)
			switch {
			case errA != nil || errN != nil:
				record(Mismatch{Op: "query", Left: l, Right: r, Err: fmt.Sprintf("array=%v node=%v", errA, errN)})
			case gotA != want || gotN != want:
				record(Mismatch{Op: "query", Left: l, Right: r, Want: want, Array: gotA, Node: gotN})
			}
		}
	}

	// 全区间结果必须与整个序列的暴力结果一致
	res.queries++
	want := bruteForce(kind, values, 0, cfg.Size-1)
	gotA, _ := arrayTree.QueryRange(0, cfg.Size-1)
	gotN, _ := nodeTree.QueryRange(0, cfg.Size-1)
	if gotA != want || gotN != want {
		record(Mismatch{Op: "full", Left: 0, Right: cfg.Size - 1, Want: want, Array: gotA, Node: gotN})
	}
	return res, nil
}

func bruteForce(kind segtree.Kind, values []int64, left, right int) int64 {
	acc := values[left]
	for _, v := range values[left+1 : right+1] {
		switch kind {
		case segtree.KindMin:
			acc = min(acc, v)
		case segtree.KindMax:
			acc = max(acc, v)
		case segtree.KindSum:
			acc += v
		}
	}
	return acc
}
