// Package contextx 以私有类型为键在 context.Context 中存取请求级信息。
package contextx

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	clientIPKey
)

// WithRequestID 注入请求 ID。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID 提取请求 ID，不存在时返回空串。
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithClientIP 注入客户端 IP。
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP 提取客户端 IP。
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey).(string); ok {
		return v
	}
	return ""
}

// LogAttrs 以 slog 键值对形式返回 ctx 中已有的请求信息。
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id := GetRequestID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if ip := GetClientIP(ctx); ip != "" {
		attrs = append(attrs, "client_ip", ip)
	}
	return attrs
}
