package startup

import (
	"fmt"

	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/contest"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	"github.com/J33rry/Cozer-Backend/internal/user"
)

// InitializeApplication 按依赖顺序初始化所有业务模块。
// 任何一步失败都视为致命错误，由调用方决定是否终止进程。
func InitializeApplication(lcClient *leetcode.Client, cfClient *codeforces.Client) error {
	fmt.Println("开始应用初始化流程...")

	if err := user.PrimeModule(database.DB); err != nil {
		return fmt.Errorf("初始化user模块失败: %w", err)
	}
	if err := leetcode.PrimeModule(database.DB, lcClient); err != nil {
		return fmt.Errorf("初始化leetcode模块失败: %w", err)
	}
	if err := codeforces.PrimeModule(database.DB, cfClient); err != nil {
		return fmt.Errorf("初始化codeforces模块失败: %w", err)
	}
	contest.PrimeModule(contest.NewService(cfClient, lcClient))

	fmt.Println("应用初始化流程完成。")
	return nil
}
