package contest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 模块级实例，由PrimeModule在启动时装配
var svc *Service

// PrimeModule 是contest模块的初始化总入口
func PrimeModule(service *Service) {
	svc = service
}

// GetUpcomingContests 返回两个平台合并后的竞赛列表
func GetUpcomingContests(c *gin.Context) {
	contests, err := svc.CachedUpcoming(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取竞赛列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  len(contests),
		"data":   contests,
	})
}
