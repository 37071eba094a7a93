// Package idgen 基于雪花算法生成进程内唯一、大致有序的 ID，用于请求 ID 等场景。
package idgen

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"

	"github.com/wyfcoding/rangequery/config"
)

// Generator ID 生成器接口。
type Generator interface {
	Generate() int64
}

// SnowflakeGenerator 每毫秒最多 4096 个 ID，节点号 0-1023。
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator 按机器号创建生成器。
func NewSnowflakeGenerator(cfg config.SnowflakeConfig) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(cfg.MachineID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	slog.Info("snowflake generator initialized", "machine_id", cfg.MachineID)
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) Generate() int64 {
	return g.node.Generate().Int64()
}

var (
	defaultGenerator Generator
	mu               sync.Mutex
)

// Init 初始化全局生成器，重复调用以最后一次成功的配置为准。
func Init(cfg config.SnowflakeConfig) error {
	g, err := NewSnowflakeGenerator(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	defaultGenerator = g
	mu.Unlock()
	return nil
}

// Default 返回全局生成器，未初始化时使用机器号 1。
func Default() Generator {
	mu.Lock()
	defer mu.Unlock()
	if defaultGenerator == nil {
		g, err := NewSnowflakeGenerator(config.SnowflakeConfig{MachineID: 1})
		if err != nil {
			panic(fmt.Errorf("failed to auto-initialize default id generator: %w", err))
		}
		defaultGenerator = g
	}
	return defaultGenerator
}

// GenID 生成一个全局唯一 ID。
func GenID() int64 {
	return Default().Generate()
}

// GenIDString 以十进制字符串返回 GenID。
func GenIDString() string {
	return strconv.FormatInt(GenID(), 10)
}
