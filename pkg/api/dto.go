package api

type WorkflowBrief struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     int    `json:"version"`
}

type WorkflowDetail struct {
	Config string `json:"config"` // 最新版本的完整 YAML 配置
}

type RunBrief struct {
	RunUUID      string `json:"run_uuid"`
	WorkflowName string `json:"workflow_name"`
	TriggerType  string `json:"trigger_type"` // manual/push/pull_request/schedule
	Status       string `json:"status"`       // running/success/failed
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time,omitempty"`
}

type StepDetail struct {
	StepName string `json:"step_name"`
	Status   string `json:"status"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

type JobDetail struct {
	JobID      string       `json:"job_id"`
	Status     string       `json:"status"`
	FailedStep string       `json:"failed_step,omitempty"`
	Steps      []StepDetail `json:"steps"`
}

type RunDetail struct {
	RunUUID string      `json:"run_uuid"`
	Config  string      `json:"config"`
	Status  string      `json:"status"`
	Jobs    []JobDetail `json:"jobs"`
}
