package notification

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 模块级实例，由PrimeModule在启动时装配
var dispatcher Dispatcher

// PrimeModule 是notification模块的初始化总入口
func PrimeModule(d Dispatcher) {
	dispatcher = d
}

// sendRequest 是单设备推送请求的载荷
type sendRequest struct {
	Token string `json:"token" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// SendNotification 向单个设备发送一条推送，主要供调试和后台工具使用
func SendNotification(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token、title、body均为必填"})
		return
	}

	if err := dispatcher.Send(c.Request.Context(), req.Token, req.Title, req.Body); err != nil {
		fmt.Println("发送推送失败:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "发送推送失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
