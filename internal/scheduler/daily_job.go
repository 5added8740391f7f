package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/notification"
	"github.com/J33rry/Cozer-Backend/internal/user"
	"gorm.io/gorm"
)

// DailyReminderJob 在用户配置的每日提醒时间推送刷题提醒。
// 以半小时为粒度：每轮检查命中当前半小时块内的所有用户。
type DailyReminderJob struct {
	DB         *gorm.DB
	Dispatcher notification.Dispatcher

	// Now 允许测试注入时钟，为nil时使用系统时间
	Now func() time.Time
}

func (j *DailyReminderJob) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// Run 执行一轮检查
func (j *DailyReminderJob) Run(ctx context.Context) error {
	start, end := ReminderWindow(j.now())

	tokens, err := user.DailyReminderTokens(j.DB, start, end)
	if err != nil {
		return fmt.Errorf("查询每日提醒订阅用户失败: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	result, err := j.Dispatcher.SendMulticast(ctx, tokens,
		"Your Daily Problem is Here!",
		"Time to solve a new challenge and boost your skills!")
	if err != nil {
		return fmt.Errorf("每日提醒推送失败: %w", err)
	}

	fmt.Printf("每日提醒已发送 [%s, %s]: 成功%d 失败%d\n", start, end, result.SuccessCount, result.FailureCount)
	return nil
}
