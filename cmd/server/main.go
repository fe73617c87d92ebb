package main

import (
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/internal/server/dispatch"
	"weft/internal/server/handler"
	"weft/internal/server/middleware"
	"weft/internal/server/scheduler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	common.InitConf()
	common.InitLog()
	config := common.GetConfig()
	logger := common.GetLogger()
	defer logger.Sync()

	if err := dao.InitDB(); err != nil {
		logger.Fatal("init database failed", zap.Error(err))
	}

	runnerClient, err := dispatch.NewClient(config.RunnerAddr)
	if err != nil {
		logger.Fatal("connect runner failed", zap.Error(err))
	}
	dispatcher := dispatch.NewDispatcher(runnerClient, common.LoadSecrets(), logger)
	handler.Init(dispatcher)

	// runner 状态回调
	go func() {
		callback := dispatch.NewCallbackServer(logger)
		if err := callback.Start(config.CallbackAddr); err != nil {
			logger.Fatal("callback server failed", zap.Error(err))
		}
	}()

	// cron 调度
	sched := scheduler.GetSchedulerService()
	sched.SetDispatcher(dispatcher)
	if err := sched.LoadAllSchedules(); err != nil {
		logger.Warn("load schedules failed", zap.Error(err))
	}
	go func() {
		if err := sched.Start(); err != nil {
			logger.Error("scheduler stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := sched.StartConsumer(); err != nil {
			logger.Error("schedule consumer stopped", zap.Error(err))
		}
	}()

	if config.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.POST("/login", handler.UserLogin)
	r.POST("/webhook", handler.Webhook)

	authed := r.Group("/", middleware.JWTAuthMiddleware())
	authed.POST("/create", handler.CreateWorkflow)
	authed.POST("/update/:name", handler.UpdateWorkflow)
	authed.POST("/trigger", handler.TriggerWorkflow)
	authed.GET("/workflow", handler.ListWorkflows)
	authed.GET("/workflow/:name", handler.ListWorkflowDetail)
	authed.GET("/history", handler.ListRunHistory)
	authed.GET("/history/:uuid", handler.ListRunHistoryDetail)

	logger.Info("weft server listening on :8080")
	if err := r.RunTLS(":8080", config.CertPath, config.KeyPath); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
