// Package config 负责 rangequery 的配置加载、校验与热更新。
// 配置文件为 TOML，环境变量以 APP_ 为前缀覆盖同名键（如 APP_SERVER_HTTP_ADDR）。
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wyfcoding/rangequery/logging"
)

// Config 顶级配置。
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    toml:"server"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   toml:"metrics"`
	Tracing   TracingConfig   `mapstructure:"tracing"   toml:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit" toml:"ratelimit"`
	Engine    EngineConfig    `mapstructure:"engine"    toml:"engine"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake" toml:"snowflake"`
}

// ServerConfig 服务基础参数。
type ServerConfig struct {
	Name        string     `mapstructure:"name"        toml:"name"        validate:"required"`
	Environment string     `mapstructure:"environment" toml:"environment" validate:"oneof=dev test prod"`
	HTTP        HTTPConfig `mapstructure:"http"        toml:"http"`
}

// HTTPConfig HTTP 监听与超时参数。
type HTTPConfig struct {
	Addr              string        `mapstructure:"addr"                toml:"addr"                validate:"required"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"        toml:"read_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" toml:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"       toml:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"        toml:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"    toml:"max_header_bytes"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"      toml:"max_body_bytes"`
	SlowThreshold     time.Duration `mapstructure:"slow_threshold"      toml:"slow_threshold"`
}

// LogConfig 日志输出、级别与切割策略。
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"  validate:"omitempty,oneof=debug info warn error"`
	Output     string `mapstructure:"output"      toml:"output" validate:"omitempty,oneof=stdout file both"`
	File       string `mapstructure:"file"        toml:"file"`
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`
	Compress   bool   `mapstructure:"compress"    toml:"compress"`
}

// MetricsConfig Prometheus 指标暴露配置，指标挂在 HTTP 服务的 Path 上。
type MetricsConfig struct {
	Path    string `mapstructure:"path"    toml:"path"`
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
}

// TracingConfig OpenTelemetry 链路追踪配置。
type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint"`
	SamplerRatio float64 `mapstructure:"sampler_ratio" toml:"sampler_ratio" validate:"gte=0,lte=1"`
	Enabled      bool    `mapstructure:"enabled"       toml:"enabled"`
}

// RateLimitConfig 进程内令牌桶限流参数。
type RateLimitConfig struct {
	Rate    float64 `mapstructure:"rate"    toml:"rate"  validate:"gte=0"`
	Burst   int     `mapstructure:"burst"   toml:"burst" validate:"gte=0"`
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
}

// EngineConfig 线段树引擎参数。
type EngineConfig struct {
	Representation string  `mapstructure:"representation" toml:"representation" validate:"oneof=array node"`
	Values         []int64 `mapstructure:"values"         toml:"values"         validate:"min=1"`
}

// SnowflakeConfig 请求 ID 生成器参数。
type SnowflakeConfig struct {
	MachineID int64 `mapstructure:"machine_id" toml:"machine_id" validate:"gte=0,lte=1023"`
}

var (
	mu       sync.Mutex
	onReload []func(*Config)
	validate = validator.New()
)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	onReload = append(onReload, hook)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "rangequery")
	v.SetDefault("server.environment", "dev")
	v.SetDefault("server.http.addr", ":8080")
	v.SetDefault("server.http.read_timeout", 5*time.Second)
	v.SetDefault("server.http.read_header_timeout", 2*time.Second)
	v.SetDefault("server.http.write_timeout", 10*time.Second)
	v.SetDefault("server.http.idle_timeout", 60*time.Second)
	v.SetDefault("server.http.slow_threshold", 500*time.Millisecond)
	v.SetDefault("server.http.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("tracing.sampler_ratio", 1.0)
	v.SetDefault("engine.representation", "array")
}

// Loader 持有一份配置文件对应的 viper 实例。
type Loader struct {
	v *viper.Viper
}

// Load 读取 path 指向的 TOML 配置，叠加环境变量并校验。
func Load(path string) (*Config, *Loader, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config error: %w", err)
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Watch 监听配置文件变更：校验通过后更新日志级别并依次调用已注册的回调。
// 校验失败的新配置会被丢弃，旧配置继续生效。
func (l *Loader) Watch() {
	l.v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name, "op", event.Op.String())
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		cfg, err := l.decode()
		if err != nil {
			slog.Error("reload config failed", "error", err)
			return
		}
		logging.SetLevel(cfg.Log.Level)
		slog.Info("config hot-reloaded and validated successfully")

		mu.Lock()
		hooks := append([]func(*Config){}, onReload...)
		mu.Unlock()
		for _, hook := range hooks {
			hook(cfg)
		}
	})
	l.v.WatchConfig()
}

// PrintWithMask 脱敏打印当前配置。
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)
		return
	}

	var configMap map[string]any
	if err := json.Unmarshal(data, &configMap); err != nil {
		slog.Error("failed to unmarshal config for masking", "error", err)
		return
	}
	mask(configMap)

	masked, err := json.MarshalIndent(configMap, "  ", "  ")
	if err != nil {
		slog.Error("failed to marshal masked config", "error", err)
		return
	}
	slog.Info("current effective configuration", "config", string(masked))
}

var sensitiveKeys = []string{"password", "secret", "dsn", "token", "endpoint"}

func mask(configMap map[string]any) {
	for key, val := range configMap {
		switch v := val.(type) {
		case map[string]any:
			mask(v)
			continue
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					mask(m)
				}
			}
			continue
		}
		for _, s := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), s) {
				configMap[key] = "******"
				break
			}
		}
	}
}

// LoggingConfig 将日志配置转换为 logging.Config。
func (c *Config) LoggingConfig(module string) logging.Config {
	return logging.Config{
		Service:    c.Server.Name,
		Module:     module,
		Level:      c.Log.Level,
		Output:     c.Log.Output,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
