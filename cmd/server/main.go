package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/J33rry/Cozer-Backend/api"
	"github.com/J33rry/Cozer-Backend/internal/codeforces"
	"github.com/J33rry/Cozer-Backend/internal/contest"
	"github.com/J33rry/Cozer-Backend/internal/leetcode"
	"github.com/J33rry/Cozer-Backend/internal/notification"
	"github.com/J33rry/Cozer-Backend/internal/platform/config"
	"github.com/J33rry/Cozer-Backend/internal/platform/database"
	fbase "github.com/J33rry/Cozer-Backend/internal/platform/firebase"
	"github.com/J33rry/Cozer-Backend/internal/platform/shutdown"
	"github.com/J33rry/Cozer-Backend/internal/platform/startup"
	"github.com/J33rry/Cozer-Backend/internal/scheduler"
	"github.com/J33rry/Cozer-Backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env文件只在本地开发时存在，缺失不是错误
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)
	fbase.InitFirebase(cfg.Firebase)

	lcClient := leetcode.NewClient(cfg.Upstream)
	cfClient := codeforces.NewClient(cfg.Upstream)

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(lcClient, cfClient); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	dispatcher := notification.NewFCMDispatcher(fbase.MessagingClient)
	notification.PrimeModule(dispatcher)

	// 装配后台定时任务
	manager := lifecycle.NewManager()
	contestService := contest.NewService(cfClient, lcClient)

	sched := scheduler.NewScheduler()
	sched.Register(&scheduler.Job{
		Name:     "stats-refresh",
		Interval: cfg.Scheduler.StatsRefreshInterval,
		Run: (&scheduler.StatsRefreshJob{
			DB:              database.DB,
			Leetcode:        lcClient,
			Codeforces:      cfClient,
			LeetcodeDelay:   cfg.Scheduler.LeetcodeThrottle,
			CodeforcesDelay: cfg.Scheduler.CodeforcesThrottle,
		}).Run,
	})
	sched.Register(&scheduler.Job{
		Name:     "contest-reminder",
		Interval: cfg.Scheduler.ContestCheckInterval,
		Run: (&scheduler.ContestReminderJob{
			DB:         database.DB,
			Contests:   contestService,
			Dispatcher: dispatcher,
			Lead:       cfg.Scheduler.ContestReminderLead,
			HalfWidth:  cfg.Scheduler.ContestReminderWindow,
		}).Run,
	})
	sched.Register(&scheduler.Job{
		Name:     "daily-reminder",
		Interval: cfg.Scheduler.DailyReminderInterval,
		Run: (&scheduler.DailyReminderJob{
			DB:         database.DB,
			Dispatcher: dispatcher,
		}).Run,
	})

	if err := sched.Start(manager); err != nil {
		panic(fmt.Sprintf("启动调度器失败: %v", err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	origins := cfg.Server.Cors.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Println("服务器已准备就绪，开始监听", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
