// Package app 管理进程生命周期：启动服务器、等待退出信号、优雅停止并执行清理。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"
)

// App 应用容器。
type App struct {
	name string
	opts options
}

// New 创建应用实例。
func New(name string, opts ...Option) *App {
	o := options{logger: slog.Default(), shutdownTimeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return &App{name: name, opts: o}
}

// Run 启动所有服务器并阻塞，直到收到 SIGINT/SIGTERM、ctx 取消或任一服务器出错。
// 返回首个服务器错误，正常退出返回 nil。
func (a *App) Run(ctx context.Context) error {
	logger := a.opts.logger
	logger.Info("application starting", "name", a.name, "version", a.opts.version, "pid", os.Getpid())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       conc.WaitGroup
		once     sync.Once
		startErr error
	)
	for _, srv := range a.opts.servers {
		wg.Go(func() {
			if err := srv.Start(ctx); err != nil {
				logger.Error("server exited with error", "error", err)
				once.Do(func() { startErr = err })
				cancel()
			}
		})
	}

	<-ctx.Done()
	logger.Info("shutting down application", "name", a.name)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.opts.shutdownTimeout)
	defer shutdownCancel()

	var stopErrs []error
	for _, srv := range a.opts.servers {
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("server failed to stop", "error", err)
			stopErrs = append(stopErrs, err)
		}
	}
	wg.Wait()

	for i := len(a.opts.cleanups) - 1; i >= 0; i-- {
		a.opts.cleanups[i]()
	}

	if startErr != nil {
		return startErr
	}
	if err := errors.Join(stopErrs...); err != nil {
		return err
	}
	logger.Info("application shut down gracefully")
	return nil
}
