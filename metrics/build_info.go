package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// BuildInfo 启动时的构建与引擎信息。
type BuildInfo struct {
	Service        string
	Version        string
	Representation string // array | node
	InitialSize    int    // 启动时序列长度
}

// RegisterBuildInfo 以常量 1 导出 rangequery_build_info，标签携带版本与引擎表示，只注册一次。
func (m *Metrics) RegisterBuildInfo(info BuildInfo) {
	if m == nil || m.BuildInfo != nil {
		return
	}
	labels := []string{
		orUnknown(info.Service),
		orUnknown(info.Version),
		orUnknown(info.Representation),
		strconv.Itoa(info.InitialSize),
	}

	m.BuildInfo = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rangequery_build_info",
		Help: "Build and engine information of the rangequery service",
	}, []string{"service", "version", "representation", "initial_size"})
	m.BuildInfo.WithLabelValues(labels...).Set(1)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
