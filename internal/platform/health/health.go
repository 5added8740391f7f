package health

import (
	"context"
	"net/http"
	"time"

	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Check 探测数据库和Redis的连通性，返回各组件的状态
func Check(ctx context.Context) (ok bool, components map[string]string) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	components = map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	ok = true

	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		components["database"] = "unreachable"
		ok = false
	}

	if err := database.RDB.Ping(ctx).Err(); err != nil {
		components["redis"] = "unreachable"
		ok = false
	}

	return ok, components
}

// Handler 是/health路由的处理函数
func Handler(c *gin.Context) {
	ok, components := Check(c.Request.Context())

	status := http.StatusOK
	state := "healthy"
	if !ok {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":     state,
		"components": components,
	})
}
