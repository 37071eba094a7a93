// Package limiter 提供进程内按键分桶的令牌桶限流器，以及支持配置热更新的动态封装。
package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter 限流器通用接口。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// KeyedLimiter 为每个 key（通常是客户端 IP）维护独立令牌桶。
// 超过 idleTTL 未访问的桶在下次清扫时回收。
type KeyedLimiter struct {
	r       rate.Limit
	b       int
	idleTTL time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const defaultIdleTTL = 10 * time.Minute

// NewKeyedLimiter 创建按键分桶的限流器。
func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		r:       r,
		b:       b,
		idleTTL: defaultIdleTTL,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *KeyedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.idleTTL {
		for k, bk := range l.buckets {
			if now.Sub(bk.lastSeen) > l.idleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	bk, ok := l.buckets[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(l.r, l.b)}
		l.buckets[key] = bk
	}
	bk.lastSeen = now
	return bk.limiter.AllowN(now, 1), nil
}

// Len 返回当前持有的桶数量。
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
