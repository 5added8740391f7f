package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/contest"
	"github.com/J33rry/Cozer-Backend/internal/notification"
	"github.com/J33rry/Cozer-Backend/internal/user"
	"gorm.io/gorm"
)

// ContestSource 是提醒任务对竞赛列表的依赖。
// 提醒任务总是拉取实时列表，不走HTTP侧的缓存。
type ContestSource interface {
	FetchUpcoming(ctx context.Context) ([]contest.Contest, error)
}

// ContestReminderJob 在竞赛开始前向订阅用户推送提醒。
// 任务按短间隔轮询，命中窗口的宽度要和轮询间隔配合，
// 保证每场竞赛至少被一轮检查命中。
type ContestReminderJob struct {
	DB         *gorm.DB
	Contests   ContestSource
	Dispatcher notification.Dispatcher
	Lead       time.Duration
	HalfWidth  time.Duration

	// Now 允许测试注入时钟，为nil时使用系统时间
	Now func() time.Time
}

func (j *ContestReminderJob) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// Run 执行一轮检查
func (j *ContestReminderJob) Run(ctx context.Context) error {
	contests, err := j.Contests.FetchUpcoming(ctx)
	if err != nil {
		return fmt.Errorf("获取竞赛列表失败: %w", err)
	}

	now := j.now()
	matching := make([]contest.Contest, 0)
	for _, c := range contests {
		if MatchesLeadTime(c.StartTime, now, j.Lead, j.HalfWidth) {
			matching = append(matching, c)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	tokens, err := user.ContestReminderTokens(j.DB)
	if err != nil {
		return fmt.Errorf("查询竞赛提醒订阅用户失败: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	for _, c := range matching {
		// 标题带具体竞赛名，正文只报平台
		title := fmt.Sprintf("Upcoming Contest: %s", c.Title)
		body := fmt.Sprintf("The %s contest starts in 30 minutes! Good luck!", c.Platform)

		result, err := j.Dispatcher.SendMulticast(ctx, tokens, title, body)
		if err != nil {
			// 单场竞赛推送失败不影响其他竞赛
			fmt.Printf("竞赛提醒推送失败 (%s): %v\n", c.Title, err)
			continue
		}
		fmt.Printf("竞赛提醒已发送 (%s): 成功%d 失败%d\n", c.Title, result.SuccessCount, result.FailureCount)
	}
	return nil
}
