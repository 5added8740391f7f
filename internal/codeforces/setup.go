package codeforces

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
	if err := db.AutoMigrate(&Stats{}, &Problem{}); err != nil {
		return fmt.Errorf("无法迁移codeforces表: %w", err)
	}
	fmt.Println("Codeforces数据库表迁移成功。")
	return nil
}

// PrimeModule 是codeforces模块的初始化总入口
func PrimeModule(db *gorm.DB, client *Client) error {
	if err := migrateDB(db); err != nil {
		return err
	}
	defaultClient = client
	svc = NewService(db, client)
	return nil
}

// RefreshUserStats 同步抓取单个handle的信息与rating历史并覆盖统计快照。
// rating历史抓取失败时用空历史代替，不阻断信息部分的写入。
func RefreshUserStats(ctx context.Context, db *gorm.DB, userID uint, handle string) error {
	infoMap, err := defaultClient.FetchUserInfo(ctx, []string{handle})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	info, ok := infoMap[handle]
	if !ok {
		return fmt.Errorf("%w: handle %s 不存在", ErrUpstream, handle)
	}

	history, err := defaultClient.FetchRatingHistory(ctx, handle)
	if err != nil {
		fmt.Printf("获取 %s 的rating历史失败: %v\n", handle, err)
		history = nil
	}

	return UpsertStatsFromAPI(db, userID, info, history)
}
