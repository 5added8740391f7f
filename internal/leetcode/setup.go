package leetcode

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// 模块级实例，由PrimeModule在启动时装配
var (
	svc           *Service
	defaultClient *Client
)

// migrateDB 负责自动迁移本模块的数据库表结构
func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Stats{}, &Problem{}, &DailyProblem{}); err != nil {
		return fmt.Errorf("无法迁移leetcode表: %w", err)
	}
	fmt.Println("LeetCode数据库表迁移成功。")
	return nil
}

// PrimeModule 是leetcode模块的初始化总入口
func PrimeModule(db *gorm.DB, client *Client) error {
	if err := migrateDB(db); err != nil {
		return err
	}
	defaultClient = client
	svc = NewService(db, client)
	return nil
}

// RefreshUserStats 抓取handle的档案并整行覆盖该用户的统计快照。
// 供profile更新接口和后台刷新任务之外的同步路径使用。
func RefreshUserStats(ctx context.Context, db *gorm.DB, userID uint, handle string) error {
	profile, err := defaultClient.FetchProfile(ctx, handle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return UpsertStatsFromProfile(db, userID, profile)
}
