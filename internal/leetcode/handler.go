package leetcode

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	"github.com/gin-gonic/gin"
)

// ProblemListRequestBody 定义了题目列表查询的请求体
type ProblemListRequestBody struct {
	Limit   int `json:"limit"`
	Skip    int `json:"skip"`
	Filters struct {
		Difficulty     string `json:"difficulty"`
		SearchKeywords string `json:"searchKeywords"`
	} `json:"filters"`
}

// GetDailyProblem 返回今天的每日一题（读穿缓存）
func GetDailyProblem(c *gin.Context) {
	record, source, err := svc.DailyProblem(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "今日暂无每日一题"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "获取每日一题失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"source": source,
		"data":   record,
	})
}

// GetProblemDetail 按slug返回题目详情（读穿缓存）
func GetProblemDetail(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少题目slug"})
		return
	}

	problem, source, err := svc.ProblemBySlug(c.Request.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到该题目"})
		case errors.Is(err, ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": "LeetCode上游请求失败"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "查询题目时发生内部错误"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"source": source,
		"data":   problem,
	})
}

// GetProblems 返回已缓存题目的过滤列表
func GetProblems(c *gin.Context) {
	var body ProblemListRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	problems, err := svc.ListProblems(body.Filters.Difficulty, body.Filters.SearchKeywords, body.Limit, body.Skip)
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

// GetUserStats 返回指定用户的LeetCode统计快照
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
			c.JSON(http.StatusNotFound, gin.H{"error": "该用户未绑定LeetCode账号"})
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
