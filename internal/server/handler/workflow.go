package handler

import (
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/internal/server/model"
	"weft/internal/server/scheduler"
	"weft/pkg/api"
	"weft/pkg/workflow"

	"github.com/gin-gonic/gin"
)

func CreateWorkflow(c *gin.Context) {
	yamlContent, err := c.GetRawData()
	if err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	config, err := workflow.ParseConfig(string(yamlContent))
	if err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}
	if err := config.Validate(); err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}

	workflowDAO := dao.NewWorkflowDao()
	if _, err := workflowDAO.GetNewestVersionByName(c, config.Name); err == nil {
		common.Error(c, common.NewErrNo(common.WorkflowExists))
		return
	}

	wf := &model.Workflow{
		Name:        config.Name,
		Description: config.Description,
		Version:     0,
		Config:      string(yamlContent),
	}
	if err := workflowDAO.Create(c, wf); err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowExists))
		return
	}

	upsertSchedule(wf, config)
	common.Success(c, nil)
}

func UpdateWorkflow(c *gin.Context) {
	name := c.Param("name")
	yamlContent, err := c.GetRawData()
	if err != nil {
		common.Error(c, common.NewErrNo(common.RequestInvalid))
		return
	}

	config, err := workflow.ParseConfig(string(yamlContent))
	if err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}
	if err := config.Validate(); err != nil {
		common.Error(c, common.NewErrNo(common.YamlInvalid))
		return
	}

	workflowDAO := dao.NewWorkflowDao()
	current, err := workflowDAO.GetNewestVersionByName(c, name)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowNotExists))
		return
	}

	wf := &model.Workflow{
		Name:        config.Name,
		Description: config.Description,
		Version:     current.Version + 1,
		Config:      string(yamlContent),
	}
	if err := workflowDAO.Create(c, wf); err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowExists))
		return
	}

	upsertSchedule(wf, config)
	common.Success(c, nil)
}

func ListWorkflows(c *gin.Context) {
	workflows, err := dao.NewWorkflowDao().GetNewestVersions(c)
	if err != nil {
		common.Error(c, err)
		return
	}

	briefs := make([]api.WorkflowBrief, 0, len(workflows))
	for _, wf := range workflows {
		briefs = append(briefs, api.WorkflowBrief{
			ID:          wf.ID,
			Name:        wf.Name,
			Description: wf.Description,
			Version:     wf.Version,
		})
	}
	common.Success(c, briefs)
}

func ListWorkflowDetail(c *gin.Context) {
	name := c.Param("name")
	wf, err := dao.NewWorkflowDao().GetNewestVersionByName(c, name)
	if err != nil {
		common.Error(c, common.NewErrNo(common.WorkflowNotExists))
		return
	}
	common.Success(c, api.WorkflowDetail{Config: wf.Config})
}

func upsertSchedule(wf *model.Workflow, config *workflow.Config) {
	if err := scheduler.GetSchedulerService().UpsertWorkflowSchedule(wf, config); err != nil {
		common.GetLogger().Warn("upsert schedule failed: " + err.Error())
	}
}
