package user

import (
	"fmt"

	"gorm.io/gorm"
)

// migrateDB 迁移用户表结构
func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("迁移User表失败: %w", err)
	}
	return nil
}

// PrimeModule 是user模块的初始化总入口
func PrimeModule(db *gorm.DB) error {
	if err := migrateDB(db); err != nil {
		return err
	}
	fmt.Println("User模块初始化完成")
	return nil
}
