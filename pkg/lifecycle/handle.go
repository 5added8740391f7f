package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台任务的生命周期控制器。
// 它由 Manager 创建，并封装了任务的关闭逻辑。
type Handle struct {
	ctx context.Context
	// Close 用于通知Manager其所属的任务已经退出。
	// 它应该在任务的Goroutine退出前通过 defer 来调用。
	Close func()
}

// Ctx 返回Handle内部的ctx
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，当生命周期管理器发出停机信号时，该channel会关闭。
// 它允许任务在select语句中监听停机信号。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()的channel关闭后，返回上下文被取消的原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定的时长，但如果生命周期句柄被取消，则会提前返回错误。
// 后台任务中所有的限速等待都应该使用这个方法。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		// 确保定时器资源在函数退出时被清理
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
