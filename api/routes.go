package api

import (
	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/contest"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/notification"
	"github.com/J33rry/Cozer-Backend/internal/platform/health"
	"github.com/J33rry/Cozer-Backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	router.GET("/health", health.Handler)

	// 账号相关的路由组 /auth
	authRoutes := router.Group("/auth")
	{
		// sync不走中间件：首次登录的用户还没有建档
		authRoutes.POST("/sync", user.Sync)
		authRoutes.GET("/profile", user.AuthMiddleware(), user.GetProfile)
		authRoutes.POST("/update", user.AuthMiddleware(), user.UpdateProfileHandler)
	}

	// LeetCode相关的路由组 /leetcode
	leetcodeRoutes := router.Group("/leetcode")
	{
		leetcodeRoutes.GET("/daily", leetcode.GetDailyProblem)
		leetcodeRoutes.POST("/problems", leetcode.GetProblems)
		leetcodeRoutes.GET("/problem/:slug", leetcode.GetProblemDetail)
		leetcodeRoutes.GET("/userStats", leetcode.GetUserStats)
	}

	// Codeforces相关的路由组 /codeforces
	codeforcesRoutes := router.Group("/codeforces")
	{
		codeforcesRoutes.POST("/problems", codeforces.GetProblems)
		codeforcesRoutes.POST("/problem", codeforces.GetProblemDetail)
		codeforcesRoutes.GET("/userStats", codeforces.GetUserStats)
	}

	// 两个平台合并的竞赛列表
	router.GET("/contests", contest.GetUpcomingContests)

	// 单设备推送，调试用
	router.POST("/notifications/send", notification.SendNotification)
}
