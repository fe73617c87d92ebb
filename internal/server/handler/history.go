package handler

import (
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/pkg/api"

	"github.com/gin-gonic/gin"
)

const historyLimit = 50

func ListRunHistory(c *gin.Context) {
	runs, err := dao.NewRunDao().GetLatestRuns(c, historyLimit)
	if err != nil {
		common.Error(c, common.NewErrNo(common.GetHistoryFail))
		return
	}

	workflowDAO := dao.NewWorkflowDao()
	nameByID := make(map[uint]string)

	var briefs []api.RunBrief
	for _, run := range runs {
		name, ok := nameByID[run.WorkflowID]
		if !ok {
			wf, err := workflowDAO.GetByID(c, run.WorkflowID)
			if err != nil {
				continue
			}
			name = wf.Name
			nameByID[run.WorkflowID] = name
		}

		brief := api.RunBrief{
			RunUUID:      run.RunUUID,
			WorkflowName: name,
			TriggerType:  run.TriggerType,
			Status:       run.Status,
			StartTime:    run.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if brief.Status == "success" || brief.Status == "failed" {
			brief.EndTime = run.UpdatedAt.Format("2006-01-02 15:04:05")
		}
		briefs = append(briefs, brief)
	}

	// running 的排前面
	runningList := make([]api.RunBrief, 0)
	otherList := make([]api.RunBrief, 0)
	for _, brief := range briefs {
		if brief.Status == "running" {
			runningList = append(runningList, brief)
		} else {
			otherList = append(otherList, brief)
		}
	}
	briefs = append(runningList, otherList...)

	common.Success(c, briefs)
}

func ListRunHistoryDetail(c *gin.Context) {
	runUUID := c.Param("uuid")

	run, err := dao.NewRunDao().GetByUUID(c, runUUID)
	if err != nil {
		common.Error(c, common.NewErrNo(common.GetHistoryDetailFail))
		return
	}

	wf, err := dao.NewWorkflowDao().GetByID(c, run.WorkflowID)
	if err != nil {
		common.Error(c, common.NewErrNo(common.GetHistoryDetailFail))
		return
	}

	jobs, err := dao.NewJobDao().GetByRunUUID(c, runUUID)
	if err != nil {
		common.Error(c, common.NewErrNo(common.GetHistoryDetailFail))
		return
	}

	steps, err := dao.NewStepDao().GetByRunUUID(c, runUUID)
	if err != nil {
		common.Error(c, common.NewErrNo(common.GetHistoryDetailFail))
		return
	}

	stepsByJob := make(map[string][]api.StepDetail)
	for _, step := range steps {
		stepsByJob[step.JobID] = append(stepsByJob[step.JobID], api.StepDetail{
			StepName: step.StepName,
			Status:   step.Status,
			Stdout:   step.Stdout,
			Stderr:   step.Stderr,
		})
	}

	detail := &api.RunDetail{
		RunUUID: run.RunUUID,
		Config:  wf.Config,
		Status:  run.Status,
	}
	for _, job := range jobs {
		detail.Jobs = append(detail.Jobs, api.JobDetail{
			JobID:      job.JobID,
			Status:     job.Status,
			FailedStep: job.FailedStep,
			Steps:      stepsByJob[job.JobID],
		})
	}

	common.Success(c, detail)
}
