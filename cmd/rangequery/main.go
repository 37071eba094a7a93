// Command rangequery 提供线段树区间查询服务与命令行工具。
package main

import (
	"os"
)

// version 由构建时 -ldflags "-X main.version=..." 注入。
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
