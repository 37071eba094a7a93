package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wyfcoding/rangequery/app"
	"github.com/wyfcoding/rangequery/config"
	"github.com/wyfcoding/rangequery/handler"
	"github.com/wyfcoding/rangequery/idgen"
	"github.com/wyfcoding/rangequery/limiter"
	"github.com/wyfcoding/rangequery/logging"
	"github.com/wyfcoding/rangequery/metrics"
	"github.com/wyfcoding/rangequery/segtree"
	"github.com/wyfcoding/rangequery/server"
	"github.com/wyfcoding/rangequery/service"
	"github.com/wyfcoding/rangequery/tracing"
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP range-query service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/rangequery.toml", "path to the TOML config file")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, loader, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.InitLogger(cfg.LoggingConfig("server")).Logger
	defer logging.LogDuration(ctx, "rangequery serve", "version", version)()
	config.PrintWithMask(cfg)

	if err := idgen.Init(cfg.Snowflake); err != nil {
		return err
	}

	shutdownTracer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(cfg.Server.Name)
	}

	rep, err := segtree.ParseRepresentation(cfg.Engine.Representation)
	if err != nil {
		return err
	}
	m.RegisterBuildInfo(metrics.BuildInfo{
		Service:        cfg.Server.Name,
		Version:        version,
		Representation: rep.String(),
		InitialSize:    len(cfg.Engine.Values),
	})
	svc, err := service.New(cfg.Engine.Values, rep, service.WithMetrics(m), service.WithLogger(logger))
	if err != nil {
		return err
	}

	// 限流参数支持热更新，enabled=false 或 rate<=0 时放行全部请求
	lim := newRateLimiter(cfg.RateLimit)
	config.RegisterReloadHook(func(c *config.Config) {
		applyRateLimit(lim, c.RateLimit)
		logger.Info("rate limit reloaded", "enabled", c.RateLimit.Enabled, "rate", c.RateLimit.Rate, "burst", c.RateLimit.Burst)
	})
	loader.Watch()

	engine := handler.NewRouter(svc, handler.RouterOptions{
		ServiceName:   cfg.Server.Name,
		Logger:        logger,
		Metrics:       m,
		MetricsPath:   cfg.Metrics.Path,
		Limiter:       lim,
		Tracing:       cfg.Tracing.Enabled,
		SlowThreshold: cfg.Server.HTTP.SlowThreshold,
		MaxBodyBytes:  cfg.Server.HTTP.MaxBodyBytes,
	})

	a := app.New(cfg.Server.Name,
		app.WithVersion(version),
		app.WithLogger(logger),
		app.WithServer(server.NewGinServer(engine, cfg.Server.HTTP, logger)),
		app.WithCleanup(func() {
			if err := shutdownTracer(context.Background()); err != nil {
				logger.Error("tracer shutdown failed", "error", err)
			}
		}),
	)
	return a.Run(ctx)
}

// newRateLimiter 按配置创建可热更新的按 IP 限流器。
func newRateLimiter(c config.RateLimitConfig) *limiter.DynamicLimiter {
	if !c.Enabled {
		return limiter.NewDynamicLimiter(nil)
	}
	return limiter.NewDynamicKeyedLimiter(c.Rate, c.Burst)
}

func applyRateLimit(lim *limiter.DynamicLimiter, c config.RateLimitConfig) {
	if !c.Enabled {
		lim.Update(nil)
		return
	}
	lim.UpdateKeyed(c.Rate, c.Burst)
}
