package scheduler

import (
	"context"
	"time"
)

// Throttle 是固定间隔的限速器，用来拉开对上游API的连续请求。
type Throttle struct {
	interval time.Duration
}

// NewThrottle 创建一个固定间隔限速器
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Wait 等待一个间隔；上下文被取消时提前返回错误。
// 间隔为零时直接返回，方便测试关闭限速。
func (t *Throttle) Wait(ctx context.Context) error {
	if t.interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(t.interval)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
