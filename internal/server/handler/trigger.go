package handler

import (
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/pkg/api"
	"weft/pkg/workflow"

	"github.com/gin-gonic/gin"
)

func TriggerWorkflow(c *gin.Context) {
	var req api.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	wf, err := dao.NewWorkflowDao().GetNewestVersionByName(c, req.WorkflowName)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowNotExists))
		return
	}

	config, err := workflow.ParseConfig(wf.Config)
	if err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}

	// 手动触发不走 on: 规则过滤
	runUUID, jobCount, err := dispatcher.StartRun(c, wf, config, workflow.EventManual)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowStartFail))
		return
	}

	common.Success(c, api.TriggerResponse{
		RunUUID:  runUUID,
		JobCount: jobCount,
	})
}
