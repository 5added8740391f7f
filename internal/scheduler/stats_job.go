package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/user"
	"gorm.io/gorm"
)

// LeetcodeFetcher 是刷新任务对LeetCode上游的依赖
type LeetcodeFetcher interface {
	FetchProfile(ctx context.Context, handle string) (*leetcode.Profile, error)
}

// CodeforcesFetcher 是刷新任务对Codeforces上游的依赖
type CodeforcesFetcher interface {
	FetchUserInfo(ctx context.Context, handles []string) (map[string]codeforces.UserInfo, error)
	FetchRatingHistory(ctx context.Context, handle string) ([]codeforces.RatingChange, error)
}

// StatsRefreshJob 周期性刷新所有已绑定用户的平台统计。
// 单个用户刷新失败只记录日志，不影响其他用户；
// 对上游的连续请求之间按配置的间隔限速。
type StatsRefreshJob struct {
	DB              *gorm.DB
	Leetcode        LeetcodeFetcher
	Codeforces      CodeforcesFetcher
	LeetcodeDelay   time.Duration
	CodeforcesDelay time.Duration
}

// Run 执行一轮刷新，两个平台依次处理
func (j *StatsRefreshJob) Run(ctx context.Context) error {
	if err := j.refreshLeetcode(ctx); err != nil {
		return err
	}
	return j.refreshCodeforces(ctx)
}

// refreshLeetcode 逐个刷新绑定了LeetCode的用户
func (j *StatsRefreshJob) refreshLeetcode(ctx context.Context) error {
	users, err := user.LeetcodeLinkedUsers(j.DB)
	if err != nil {
		return fmt.Errorf("查询LeetCode绑定用户失败: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	throttle := NewThrottle(j.LeetcodeDelay)
	updated := 0
	for i, u := range users {
		if i > 0 {
			if err := throttle.Wait(ctx); err != nil {
				return err
			}
		}

		profile, err := j.Leetcode.FetchProfile(ctx, u.Handle)
		if err != nil {
			fmt.Printf("刷新LeetCode统计失败 (user=%d, handle=%s): %v\n", u.ID, u.Handle, err)
			continue
		}
		if err := leetcode.UpsertStatsFromProfile(j.DB, u.ID, profile); err != nil {
			fmt.Printf("写入LeetCode统计失败 (user=%d): %v\n", u.ID, err)
			continue
		}
		updated++
	}

	fmt.Printf("LeetCode统计刷新完成: %d/%d\n", updated, len(users))
	return nil
}

// refreshCodeforces 刷新绑定了Codeforces的用户。
// user.info接口支持批量查询，先一次拿到所有用户的基础信息，
// 再逐个拉取rating历史。
func (j *StatsRefreshJob) refreshCodeforces(ctx context.Context) error {
	users, err := user.CodeforcesLinkedUsers(j.DB)
	if err != nil {
		return fmt.Errorf("查询Codeforces绑定用户失败: %w", err)
	}
	if len(users) == 0 {
		return nil
	}

	handles := make([]string, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Handle)
	}

	infos, err := j.Codeforces.FetchUserInfo(ctx, handles)
	if err != nil {
		return fmt.Errorf("批量查询Codeforces用户信息失败: %w", err)
	}

	throttle := NewThrottle(j.CodeforcesDelay)
	updated := 0
	for i, u := range users {
		info, ok := infos[u.Handle]
		if !ok {
			// 批量结果里没有这个handle，可能已被改名或注销，跳过
			fmt.Printf("Codeforces批量结果缺少用户 (user=%d, handle=%s)\n", u.ID, u.Handle)
			continue
		}

		if i > 0 {
			if err := throttle.Wait(ctx); err != nil {
				return err
			}
		}

		history, err := j.Codeforces.FetchRatingHistory(ctx, u.Handle)
		if err != nil {
			// rating历史拉不到不算致命，基础信息照常落库
			fmt.Printf("查询Codeforces rating历史失败 (handle=%s): %v\n", u.Handle, err)
			history = nil
		}

		if err := codeforces.UpsertStatsFromAPI(j.DB, u.ID, info, history); err != nil {
			fmt.Printf("写入Codeforces统计失败 (user=%d): %v\n", u.ID, err)
			continue
		}
		updated++
	}

	fmt.Printf("Codeforces统计刷新完成: %d/%d\n", updated, len(users))
	return nil
}
