package jobrpc

import "weft/pkg/workflow"

// ExecuteRunRequest 一次矩阵展开后的完整作业集合，服务端负责规划，
// runner 只负责按步骤执行
type ExecuteRunRequest struct {
	RunUUID     string               `json:"run_uuid"`
	FailFast    bool                 `json:"fail_fast"`
	MaxParallel int                  `json:"max_parallel"`
	Images      map[string]string    `json:"images,omitempty"`
	Report      *workflow.ReportSpec `json:"report,omitempty"`
	// ReportToken 由服务端从密钥仓库解析，只在内存中传递，不落库不打日志
	ReportToken string         `json:"report_token,omitempty"`
	Jobs        []workflow.Job `json:"jobs"`
}

type ExecuteRunResponse struct {
}

const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
	StatusCancelled = "cancelled"
)

type StepStatusUpdate struct {
	RunUUID  string `json:"run_uuid"`
	JobID    string `json:"job_id"`
	StepName string `json:"step_name"`
	Status   string `json:"status"` // pending/running/success/failed/skipped/cancelled
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
}

type JobStatusUpdate struct {
	RunUUID    string `json:"run_uuid"`
	JobID      string `json:"job_id"`
	Status     string `json:"status"` // pending/running/success/failed/cancelled
	FailedStep string `json:"failed_step,omitempty"`
}

type RunStatusUpdate struct {
	RunUUID string `json:"run_uuid"`
	Status  string `json:"status"` // running/success/failed
}

type StepStatusUpdateRequest struct {
	StepStatusUpdate StepStatusUpdate `json:"step_status_update"`
}

type StepStatusUpdateResponse struct {
}

type JobStatusUpdateRequest struct {
	JobStatusUpdate JobStatusUpdate `json:"job_status_update"`
}

type JobStatusUpdateResponse struct {
}

type RunStatusUpdateRequest struct {
	RunStatusUpdate RunStatusUpdate `json:"run_status_update"`
}

type RunStatusUpdateResponse struct {
}
