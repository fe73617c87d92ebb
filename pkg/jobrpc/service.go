package jobrpc

// JobRunnerService 定义 runner 需实现的 RPC 服务接口
type JobRunnerService interface {
	// ExecuteRun 执行一次运行（非阻塞：立即返回，作业异步执行）
	ExecuteRun(req *ExecuteRunRequest, resp *ExecuteRunResponse) error
}

// ServerCallbackService 定义服务端需实现的回调接口
// runner 通过这些方法向服务端推送状态
type ServerCallbackService interface {
	PushStepStatus(req *StepStatusUpdateRequest, resp *StepStatusUpdateResponse) error
	PushJobStatus(req *JobStatusUpdateRequest, resp *JobStatusUpdateResponse) error
	PushRunStatus(req *RunStatusUpdateRequest, resp *RunStatusUpdateResponse) error
}
