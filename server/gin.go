package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/rangequery/config"
)

const shutdownTimeout = 5 * time.Second

// GinServer 以 http.Server 承载 Gin 引擎。
type GinServer struct {
	server *http.Server
	logger *slog.Logger
	ready  chan net.Addr
}

// NewGinServer 按 HTTP 配置创建服务器。
func NewGinServer(engine *gin.Engine, cfg config.HTTPConfig, logger *slog.Logger) *GinServer {
	return &GinServer{
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    cfg.MaxHeaderBytes,
		},
		logger: logger,
		ready:  make(chan net.Addr, 1),
	}
}

// Ready 在监听成功后送出实际监听地址，仅送出一次。
func (s *GinServer) Ready() <-chan net.Addr {
	return s.ready
}

// Start 监听并服务，ctx 取消时优雅关闭。
func (s *GinServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("starting gin server", "addr", ln.Addr().String())
	s.ready <- ln.Addr()

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("gin server stopping due to context cancellation")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Stop 优雅关闭服务器。
func (s *GinServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping gin server gracefully")
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
