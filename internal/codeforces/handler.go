package codeforces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// ProblemRequestBody 定义了题面查询的请求体
type ProblemRequestBody struct {
	ContestID int    `json:"contestId" binding:"required"`
	Index     string `json:"index" binding:"required"`
}

// ProblemListRequestBody 定义了题目列表查询的请求体
type ProblemListRequestBody struct {
	Limit   int `json:"limit"`
	Skip    int `json:"skip"`
	Filters struct {
		SearchKeywords string `json:"searchKeywords"`
	} `json:"filters"`
}

// GetProblemDetail 按比赛号和题号返回题面（读穿缓存）
func GetProblemDetail(c *gin.Context) {
	var body ProblemRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少contestId或index"})
		return
	}

	problem, source, err := svc.ProblemByID(c.Request.Context(), body.ContestID, body.Index)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该题目，或页面被拦截"})
		case errors.Is(err, ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "抓取题面失败"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询题面时发生内部错误"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"source": source,
		"data":   problem,
	})
}

// GetProblems 返回已缓存题面的过滤列表
func GetProblems(c *gin.Context) {
	var body ProblemListRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	problems, err := svc.ListProblems(body.Filters.SearchKeywords, body.Limit, body.Skip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询题目列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"source":   SourceDatabase,
		"total":    len(problems),
		"problems": problems,
	})
}

// GetUserStats 返回指定用户的Codeforces统计快照
func GetUserStats(c *gin.Context) {
	userIDStr := c.Query("userId")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少userId参数"})
		return
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId格式错误"})
		return
	}

	stats, err := StatsByUserID(database.DB, uint(userID))
	if err != nil {
		if errors.Is(err, ErrNotLinked) {
			c.JSON(http.StatusNotFound, gin.H{"error": "该用户未绑定Codeforces账号"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询统计数据失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}
