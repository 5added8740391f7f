package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/J33rry/Cozer-Backend/pkg/lifecycle"
)

const (
	httpTimeout     = 15 * time.Second
	gracefulTimeout = 30 * time.Second
)

// Coordinator 负责编排应用程序的优雅停机流程。
// 先停HTTP服务器，再广播停机信号，等待后台任务跑完当前一轮。
type Coordinator struct {
	Manager *lifecycle.Manager
}

// NewCoordinator 创建一个新的停机协调器
func NewCoordinator(manager *lifecycle.Manager) *Coordinator {
	return &Coordinator{Manager: manager}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 阻塞直到接收到停机信号
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 关闭HTTP服务器，允许正在进行的请求完成
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Gin服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("Gin服务器已关闭。")
	}

	// 广播停机信号，等待后台任务完成正在执行的这一轮
	fmt.Printf("等待最多 %v 以完成后台任务...\n", gracefulTimeout)
	c.Manager.Shutdown()

	remaining := c.Manager.WaitWithTimeout(gracefulTimeout)
	if len(remaining) == 0 {
		fmt.Println("所有后台任务已优雅退出。")
	} else {
		fmt.Printf("以下任务未能在超时前退出: %v\n", remaining)
	}

	fmt.Println("优雅停机完成。")
}
