package user

import (
	"fmt"
	"net/http"

	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	fbase "github.com/J33rry/Cozer-Backend/internal/platform/firebase"
	"github.com/gin-gonic/gin"
)

// syncRequest 是登录同步请求的可选载荷
type syncRequest struct {
	PushToken   string `json:"pushToken"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// Sync 处理登录后的账号同步。
// 该路由不走AuthMiddleware：凭证在这里单独校验，
// 这样首次登录的用户也能完成建档。
func Sync(c *gin.Context) {
	idToken := bearerToken(c)
	if idToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少身份凭证"})
		return
	}

	identity, err := fbase.VerifyIDToken(c.Request.Context(), idToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "身份凭证无效"})
		return
	}

	var req syncRequest
	// 载荷整体可选，解析失败按空载荷处理
	_ = c.ShouldBindJSON(&req)

	u, err := SyncUser(database.DB, identity, req.PushToken, req.IsAnonymous)
	if err != nil {
		fmt.Println("同步用户失败:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "同步用户失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"userId":         u.ID,
		"displayName":    u.DisplayName,
		"leetcodeUser":   u.LeetcodeHandle,
		"codeforcesUser": u.CodeforcesHandle,
	})
}

// GetProfile 返回用户档案和两个平台的统计快照。
// 某个平台未绑定或暂无数据时，对应字段返回占位说明而不是报错。
func GetProfile(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "身份信息缺失"})
		return
	}

	u, err := FindByFirebaseUID(database.DB, identity.UID)
	if err != nil {
		fmt.Println("查询用户失败:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询用户失败"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}

	var leetcodeStats interface{} = gin.H{"message": "User not linked"}
	if u.LeetcodeHandle != nil && *u.LeetcodeHandle != "" {
		if stats, err := leetcode.StatsByUserID(database.DB, u.ID); err == nil && stats != nil {
			leetcodeStats = stats
		} else {
			leetcodeStats = gin.H{"message": "Stats not available yet"}
		}
	}

	var codeforcesStats interface{} = gin.H{"message": "User not linked"}
	if u.CodeforcesHandle != nil && *u.CodeforcesHandle != "" {
		if stats, err := codeforces.StatsByUserID(database.DB, u.ID); err == nil && stats != nil {
			codeforcesStats = stats
		} else {
			codeforcesStats = gin.H{"message": "Stats not available yet"}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"user":       u,
		"leetcode":   leetcodeStats,
		"codeforces": codeforcesStats,
	})
}

// UpdateProfileHandler 整体覆盖用户档案。
// 绑定了新handle时立即同步拉取一次统计，handle无效直接报400，
// 避免把错误的绑定留在库里。
func UpdateProfileHandler(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "身份信息缺失"})
		return
	}

	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式无效"})
		return
	}

	userID, err := UpdateProfile(database.DB, identity.UID, update)
	if err != nil {
		fmt.Println("更新用户档案失败:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新用户档案失败"})
		return
	}

	ctx := c.Request.Context()
	if update.LeetcodeHandle != "" {
		if err := leetcode.RefreshUserStats(ctx, database.DB, userID, update.LeetcodeHandle); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "LeetCode用户名无效或服务不可用"})
			return
		}
	}
	if update.CodeforcesHandle != "" {
		if err := codeforces.RefreshUserStats(ctx, database.DB, userID, update.CodeforcesHandle); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Codeforces用户名无效或服务不可用"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
