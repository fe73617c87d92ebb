package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/pkg/api"
	"weft/pkg/workflow"

	"github.com/gin-gonic/gin"
)

const (
	webhookSecret   = "shared_secret"
	timestampMaxAge = 300
)

// Webhook 接收源码托管侧推送的事件（push / pull_request）。
// 签名不对或时间戳过期直接拒绝；触发规则不匹配不是错误，返回 activated=false。
func Webhook(c *gin.Context) {
	timestampStr := c.GetHeader("X-Webhook-Timestamp")
	signature := c.GetHeader("X-Webhook-Signature")

	if timestampStr == "" || signature == "" {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	now := time.Now().Unix()
	if now-timestamp > timestampMaxAge || timestamp > now {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	var payload api.EventRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	signatureBase := fmt.Sprintf("%s.%s.%s", timestampStr, string(payloadBytes), webhookSecret)
	hash := sha256.Sum256([]byte(signatureBase))
	computedSignature := hex.EncodeToString(hash[:])

	if computedSignature != signature {
		common.Error(c, common.NewErrNo(common.WebhookInvalid))
		return
	}

	event, err := parseEvent(payload)
	if err != nil {
		common.Error(c, common.NewErrNo(common.EventInvalid))
		return
	}

	wf, err := dao.NewWorkflowDao().GetNewestVersionByName(c, payload.WorkflowName)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowNotExists))
		return
	}

	config, err := workflow.ParseConfig(wf.Config)
	if err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}

	// 规则不匹配只是跳过，不创建任何作业
	if !config.On.Matches(event) {
		common.Success(c, api.EventResponse{Activated: false})
		return
	}

	runUUID, jobCount, err := dispatcher.StartRun(c, wf, config, event.Kind)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowStartFail))
		return
	}

	common.Success(c, api.EventResponse{
		Activated: true,
		RunUUID:   runUUID,
		JobCount:  jobCount,
	})
}

// parseEvent 事件种类是封闭集合，未知种类直接拒绝
func parseEvent(payload api.EventRequest) (workflow.Event, error) {
	switch workflow.EventKind(payload.Kind) {
	case workflow.EventPush:
		return workflow.Event{Kind: workflow.EventPush, Branch: payload.Branch}, nil
	case workflow.EventPullRequest:
		return workflow.Event{Kind: workflow.EventPullRequest, Branch: payload.Branch}, nil
	default:
		return workflow.Event{}, fmt.Errorf("unrecognized event kind %q", payload.Kind)
	}
}
