// Package server 提供 HTTP 服务器的启动与优雅关闭封装。
package server

import "context"

// Server 可由 app.App 统一管理生命周期的服务器。
type Server interface {
	// Start 阻塞运行，直到 ctx 取消或服务器出错。
	Start(ctx context.Context) error
	// Stop 优雅关闭，等待进行中的请求完成。
	Stop(ctx context.Context) error
}
