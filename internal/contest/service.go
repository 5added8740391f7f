package contest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/platform/database"
)

// Contest 是两个平台竞赛的统一形态。
// 它只在一次查询或一次轮询内存活，不持久化。
type Contest struct {
	Platform  string `json:"platform"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime int64  `json:"startTime"` // 毫秒级时间戳
	Duration  int64  `json:"duration"`  // 秒
}

const (
	// cacheKey 是HTTP查询路径使用的Redis缓存键
	cacheKey = "contests:upcoming"
	// cacheTTL 是该缓存的过期时间；轮询任务不走缓存，总是现取
	cacheTTL = 5 * time.Minute
)

// Service 聚合两个平台的竞赛列表
type Service struct {
	cf *codeforces.Client
	lc *leetcode.Client
}

// NewService 创建一个Service
func NewService(cf *codeforces.Client, lc *leetcode.Client) *Service {
	return &Service{cf: cf, lc: lc}
}

// NormalizeCodeforces 把contest.list的结果过滤为尚未开始的竞赛并统一形态
func NormalizeCodeforces(entries []codeforces.ContestEntry) []Contest {
	var contests []Contest
	for _, e := range entries {
		if e.Phase != "BEFORE" {
			continue
		}
		contests = append(contests, Contest{
			Platform:  "Codeforces",
			ID:        strconv.Itoa(e.ID),
			Title:     e.Name,
			StartTime: e.StartTimeSeconds * 1000,
			Duration:  e.DurationSeconds,
		})
	}
	return contests
}

// NormalizeLeetcode 把topTwoContests的结果统一形态
func NormalizeLeetcode(entries []leetcode.ContestInfo) []Contest {
	var contests []Contest
	for _, e := range entries {
		contests = append(contests, Contest{
			Platform:  "LeetCode",
			ID:        e.TitleSlug,
			Title:     e.Title,
			StartTime: e.StartTime * 1000,
			Duration:  e.Duration,
		})
	}
	return contests
}

// Merge 合并多个来源的竞赛并按开始时间升序排序
func Merge(lists ...[]Contest) []Contest {
	var merged []Contest
	for _, list := range lists {
		merged = append(merged, list...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].StartTime < merged[j].StartTime
	})
	return merged
}

// FetchUpcoming 并行地从两个平台现取竞赛列表并合并。
// 任一来源失败则整体失败，由调用方决定如何降级。
func (s *Service) FetchUpcoming(ctx context.Context) ([]Contest, error) {
	var (
		wg        sync.WaitGroup
		cfEntries []codeforces.ContestEntry
		lcEntries []leetcode.ContestInfo
		cfErr     error
		lcErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cfEntries, cfErr = s.cf.FetchContestList(ctx)
	}()
	go func() {
		defer wg.Done()
		lcEntries, lcErr = s.lc.FetchUpcomingContests(ctx)
	}()
	wg.Wait()

	if cfErr != nil {
		return nil, fmt.Errorf("获取Codeforces竞赛列表失败: %w", cfErr)
	}
	if lcErr != nil {
		return nil, fmt.Errorf("获取LeetCode竞赛列表失败: %w", lcErr)
	}

	return Merge(NormalizeCodeforces(cfEntries), NormalizeLeetcode(lcEntries)), nil
}

// CachedUpcoming 是HTTP查询路径使用的带短TTL缓存的版本
func (s *Service) CachedUpcoming(ctx context.Context) ([]Contest, error) {
	if raw, err := database.RDB.Get(ctx, cacheKey).Result(); err == nil {
		var contests []Contest
		if err := json.Unmarshal([]byte(raw), &contests); err == nil {
			return contests, nil
		}
		// 缓存内容损坏时当作未命中，重新抓取并覆盖
	}

	contests, err := s.FetchUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(contests); err == nil {
		if err := database.RDB.Set(ctx, cacheKey, raw, cacheTTL).Err(); err != nil {
			fmt.Printf("写入竞赛列表缓存失败: %v\n", err)
		}
	}

	return contests, nil
}
