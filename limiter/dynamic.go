package limiter

import (
	"context"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// DynamicLimiter 可在运行期整体替换内部限流器，内部为空时放行全部请求。
type DynamicLimiter struct {
	value atomic.Pointer[holder]
}

type holder struct {
	l Limiter
}

// NewDynamicLimiter 创建动态限流器，initial 可为 nil。
func NewDynamicLimiter(initial Limiter) *DynamicLimiter {
	d := &DynamicLimiter{}
	d.Update(initial)
	return d
}

// NewDynamicKeyedLimiter 创建以按键令牌桶为初始实现的动态限流器。
func NewDynamicKeyedLimiter(r float64, burst int) *DynamicLimiter {
	d := NewDynamicLimiter(nil)
	d.UpdateKeyed(r, burst)
	return d
}

// Update 替换内部限流器。
func (d *DynamicLimiter) Update(l Limiter) {
	if d == nil {
		return
	}
	d.value.Store(&holder{l: l})
}

// UpdateKeyed 替换为新的按键令牌桶；r <= 0 表示关闭限流。
func (d *DynamicLimiter) UpdateKeyed(r float64, burst int) {
	if r <= 0 {
		d.Update(nil)
		return
	}
	if burst <= 0 {
		burst = max(1, int(r))
	}
	d.Update(NewKeyedLimiter(rate.Limit(r), burst))
}

func (d *DynamicLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if d == nil {
		return true, nil
	}
	h := d.value.Load()
	if h == nil || h.l == nil {
		return true, nil
	}
	return h.l.Allow(ctx, key)
}
