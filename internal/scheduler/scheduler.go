package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/J33rry/Cozer-Backend/pkg/lifecycle"
	"github.com/google/uuid"
)

// Job 是一个按固定间隔执行的后台任务
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	// lastRun 记录最近一次开始执行的时刻，仅用于日志
	lastRun time.Time
}

// Scheduler 驱动一组后台任务。
// 每个任务独占一个Goroutine，通过生命周期句柄接收停机信号；
// 正在执行中的任务会跑完当前这一轮才退出。
type Scheduler struct {
	jobs []*Job
}

// NewScheduler 创建一个空的任务调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register 注册一个后台任务，必须在Start之前调用
func (s *Scheduler) Register(job *Job) {
	s.jobs = append(s.jobs, job)
}

// Start 为每个任务启动循环。任务在第一个间隔之后才首次执行。
func (s *Scheduler) Start(manager *lifecycle.Manager) error {
	for _, job := range s.jobs {
		handle, err := manager.NewServiceHandle("scheduler:" + job.Name)
		if err != nil {
			return err
		}
		go s.runLoop(job, handle)
	}
	return nil
}

// runLoop 是单个任务的主循环
func (s *Scheduler) runLoop(job *Job, handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Printf("调度器: 任务 [%s] 启动，间隔 %s\n", job.Name, job.Interval)

	for {
		if err := handle.Sleep(job.Interval); err != nil {
			fmt.Printf("调度器: 任务 [%s] 收到停机信号，退出\n", job.Name)
			return
		}

		runID := uuid.NewString()[:8]
		started := time.Now()
		if !job.lastRun.IsZero() {
			fmt.Printf("调度器: 任务 [%s] 开始执行 (run=%s, 距上次 %s)\n", job.Name, runID, started.Sub(job.lastRun).Round(time.Second))
		} else {
			fmt.Printf("调度器: 任务 [%s] 开始执行 (run=%s)\n", job.Name, runID)
		}
		job.lastRun = started

		if err := job.Run(handle.Ctx()); err != nil {
			fmt.Printf("调度器: 任务 [%s] 执行失败 (run=%s): %v\n", job.Name, runID, err)
		} else {
			fmt.Printf("调度器: 任务 [%s] 执行完成 (run=%s, 耗时=%s)\n", job.Name, runID, time.Since(started).Round(time.Millisecond))
		}
	}
}
