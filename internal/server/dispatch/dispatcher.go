package dispatch

import (
	"context"
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/internal/server/model"
	"weft/pkg/jobrpc"
	"weft/pkg/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher 把一次触发变成一条运行记录加一组作业，并整体发给 runner。
// 矩阵为空（某个轴没有值）不是错误：运行直接以 success 结束，零作业。
type Dispatcher struct {
	client  *Client
	secrets *common.SecretStore
	logger  *zap.Logger
}

func NewDispatcher(client *Client, secrets *common.SecretStore, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		client:  client,
		secrets: secrets,
		logger:  logger,
	}
}

func (d *Dispatcher) StartRun(ctx context.Context, wf *model.Workflow, config *workflow.Config, trigger workflow.EventKind) (string, int, error) {
	jobs := config.BuildJobs()
	runUUID := uuid.NewString()

	status := jobrpc.StatusRunning
	if len(jobs) == 0 {
		status = jobrpc.StatusSuccess
	}

	run := &model.WorkflowRun{
		RunUUID:     runUUID,
		WorkflowID:  wf.ID,
		Version:     wf.Version,
		TriggerType: string(trigger),
		Status:      status,
		JobCount:    len(jobs),
	}
	if err := dao.NewRunDao().Create(ctx, run); err != nil {
		return "", 0, err
	}
	if len(jobs) == 0 {
		d.logger.Info("matrix expanded to zero jobs",
			zap.String("workflow", wf.Name),
			zap.String("run_uuid", runUUID))
		return runUUID, 0, nil
	}

	jobRuns := make([]*model.JobRun, 0, len(jobs))
	for _, job := range jobs {
		jobRuns = append(jobRuns, &model.JobRun{
			RunUUID: runUUID,
			JobID:   job.ID,
			Status:  jobrpc.StatusPending,
		})
	}
	if err := dao.NewJobDao().CreateBatch(ctx, jobRuns); err != nil {
		return "", 0, err
	}

	req := &jobrpc.ExecuteRunRequest{
		RunUUID:     runUUID,
		FailFast:    config.Strategy.FailFast,
		MaxParallel: config.Strategy.Parallelism(),
		Images:      config.Images,
		Report:      config.Report,
		ReportToken: d.resolveReportToken(wf.Name, config.Report),
		Jobs:        jobs,
	}
	if _, err := d.client.ExecuteRun(req); err != nil {
		return "", 0, err
	}
	return runUUID, len(jobs), nil
}

// resolveReportToken 只解析名字，密钥值不打日志
func (d *Dispatcher) resolveReportToken(workflowName string, report *workflow.ReportSpec) string {
	if report == nil || report.Secret == "" {
		return ""
	}
	token, ok := d.secrets.Get(report.Secret)
	if !ok {
		d.logger.Warn("report secret not configured, upload will be skipped",
			zap.String("workflow", workflowName),
			zap.String("secret_name", report.Secret))
		return ""
	}
	return token
}
