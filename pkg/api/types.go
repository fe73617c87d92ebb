package api

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TriggerRequest struct {
	WorkflowName string `json:"workflow_name"`
}

type TriggerResponse struct {
	RunUUID  string `json:"run_uuid"`
	JobCount int    `json:"job_count"`
}

// EventRequest webhook 推送的原始事件（签名校验通过后解析）
type EventRequest struct {
	WorkflowName string `json:"workflow_name" binding:"required"`
	Kind         string `json:"kind" binding:"required"`
	Branch       string `json:"branch"`
}

type EventResponse struct {
	Activated bool   `json:"activated"`
	RunUUID   string `json:"run_uuid,omitempty"`
	JobCount  int    `json:"job_count"`
}
