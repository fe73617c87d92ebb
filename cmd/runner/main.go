package main

import (
	"weft/internal/common"
	"weft/internal/runner/rpcserver"

	"go.uber.org/zap"
)

func main() {
	common.InitConf()
	common.InitLog()
	config := common.GetConfig()
	logger := common.GetLogger()
	defer logger.Sync()

	server, err := rpcserver.NewServer(config.CallbackAddr)
	if err != nil {
		logger.Fatal("init runner failed", zap.Error(err))
	}

	logger.Info("weft runner listening", zap.String("addr", config.RunnerAddr))
	if err := server.Start(config.RunnerAddr); err != nil {
		logger.Fatal("runner stopped", zap.Error(err))
	}
}
