package dispatch

import (
	"context"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"weft/internal/server/dao"
	"weft/internal/server/model"
	"weft/pkg/jobrpc"

	"go.uber.org/zap"
)

// CallbackServer 实现 jobrpc.ServerCallbackService 接口，
// 接收 runner 推送的状态更新并落库
type CallbackServer struct {
	logger *zap.Logger
}

func NewCallbackServer(logger *zap.Logger) *CallbackServer {
	return &CallbackServer{logger: logger}
}

func (s *CallbackServer) PushStepStatus(req *jobrpc.StepStatusUpdateRequest, resp *jobrpc.StepStatusUpdateResponse) error {
	update := req.StepStatusUpdate
	return dao.NewStepDao().Upsert(context.Background(), &model.StepRun{
		RunUUID:  update.RunUUID,
		JobID:    update.JobID,
		StepName: update.StepName,
		Status:   update.Status,
		Stdout:   update.Stdout,
		Stderr:   update.Stderr,
	})
}

func (s *CallbackServer) PushJobStatus(req *jobrpc.JobStatusUpdateRequest, resp *jobrpc.JobStatusUpdateResponse) error {
	update := req.JobStatusUpdate
	return dao.NewJobDao().Upsert(context.Background(), &model.JobRun{
		RunUUID:    update.RunUUID,
		JobID:      update.JobID,
		Status:     update.Status,
		FailedStep: update.FailedStep,
	})
}

func (s *CallbackServer) PushRunStatus(req *jobrpc.RunStatusUpdateRequest, resp *jobrpc.RunStatusUpdateResponse) error {
	update := req.RunStatusUpdate
	s.logger.Info("run finished",
		zap.String("run_uuid", update.RunUUID),
		zap.String("status", update.Status))
	return dao.NewRunDao().UpsertStatus(context.Background(), &model.WorkflowRun{
		RunUUID: update.RunUUID,
		Status:  update.Status,
	})
}

func (s *CallbackServer) Start(addr string) error {
	if err := rpc.RegisterName("ServerCallbackService", s); err != nil {
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
