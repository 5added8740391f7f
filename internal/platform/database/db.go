package database

import (
	"fmt"
	"log"
	"os"

	"github.com/J33rry/Cozer-Backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 初始化数据库连接
// 优先使用Postgres；未配置DSN时回退到本地SQLite文件
func InitDB(cfg config.DatabaseConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 调试慢SQL时可临时调成Info
			Colorful:      true,
		},
	)

	if cfg.PostgresDSN != "" {
		DB, err = gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
			Logger: newLogger,
		})
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.SqlitePath), &gorm.Config{
			Logger: newLogger,
		})
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
