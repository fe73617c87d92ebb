package rpcserver

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
	"weft/internal/common"
	"weft/internal/runner/engine"
	"weft/internal/runner/report"
	"weft/internal/runner/scheduler"
	"weft/pkg/jobrpc"

	"go.uber.org/zap"
)

// Server 实现 jobrpc.JobRunnerService 接口
type Server struct {
	sched  *scheduler.RunScheduler
	logger *zap.Logger
}

func NewServer(serverCallbackAddr string) (*Server, error) {
	cfg := common.GetConfig()
	logger := common.GetLogger()

	// 连接服务端的回调服务（用于推送状态）
	conn, err := net.Dial("tcp", serverCallbackAddr)
	if err != nil {
		return nil, err
	}
	callbackCli := jsonrpc.NewClient(conn)

	callbacks := scheduler.Callbacks{
		StepStatus: func(update *jobrpc.StepStatusUpdate) error {
			var resp jobrpc.StepStatusUpdateResponse
			return callbackCli.Call("ServerCallbackService.PushStepStatus",
				&jobrpc.StepStatusUpdateRequest{StepStatusUpdate: *update}, &resp)
		},
		JobStatus: func(update *jobrpc.JobStatusUpdate) error {
			var resp jobrpc.JobStatusUpdateResponse
			return callbackCli.Call("ServerCallbackService.PushJobStatus",
				&jobrpc.JobStatusUpdateRequest{JobStatusUpdate: *update}, &resp)
		},
		RunStatus: func(update *jobrpc.RunStatusUpdate) error {
			var resp jobrpc.RunStatusUpdateResponse
			return callbackCli.Call("ServerCallbackService.PushRunStatus",
				&jobrpc.RunStatusUpdateRequest{RunStatusUpdate: *update}, &resp)
		},
	}

	execEngine, err := engine.NewDockerEngine(cfg.DockerHost,
		time.Duration(cfg.StepTimeout)*time.Minute, logger)
	if err != nil {
		return nil, err
	}
	uploader := report.NewUploader(cfg.ReportURL)

	return &Server{
		sched:  scheduler.NewRunScheduler(execEngine, uploader, cfg.DefaultImage, logger, callbacks),
		logger: logger,
	}, nil
}

// ExecuteRun 实现 RPC 方法：接收服务端的运行请求（非阻塞）
func (s *Server) ExecuteRun(req *jobrpc.ExecuteRunRequest, resp *jobrpc.ExecuteRunResponse) error {
	go func() {
		if err := s.sched.ScheduleRun(req); err != nil {
			s.logger.Error("schedule run failed",
				zap.String("run_uuid", req.RunUUID), zap.Error(err))
		}
	}()
	return nil
}

func (s *Server) Start(addr string) error {
	if err := rpc.RegisterName("JobRunnerService", s); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			continue
		}
		go jsonrpc.ServeConn(conn)
	}
}
