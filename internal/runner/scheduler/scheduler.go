package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"weft/internal/runner/engine"
	"weft/pkg/jobrpc"
	"weft/pkg/workflow"

	"go.uber.org/zap"
)

// ExecEngine 执行一步并阻塞到它退出
type ExecEngine interface {
	ExecuteStep(ctx context.Context, req engine.StepRequest) (engine.StepResult, error)
}

// Reporter 把覆盖率产物转发给外部聚合服务
type Reporter interface {
	Upload(ctx context.Context, artifactPath string, spec *workflow.ReportSpec, token string) error
}

// Callbacks 状态推送回调（step/job/run 三级）
type Callbacks struct {
	StepStatus func(*jobrpc.StepStatusUpdate) error
	JobStatus  func(*jobrpc.JobStatusUpdate) error
	RunStatus  func(*jobrpc.RunStatusUpdate) error
}

// RunScheduler 作业调度器：作业之间并行（信号量限流），作业内步骤严格串行。
// 作业之间没有共享可变状态，唯一的跨作业动作是 fail-fast 取消。
type RunScheduler struct {
	engine       ExecEngine
	reporter     Reporter
	defaultImage string
	logger       *zap.Logger
	callbacks    Callbacks
}

func NewRunScheduler(execEngine ExecEngine, reporter Reporter, defaultImage string, logger *zap.Logger, callbacks Callbacks) *RunScheduler {
	return &RunScheduler{
		engine:       execEngine,
		reporter:     reporter,
		defaultImage: defaultImage,
		logger:       logger,
		callbacks:    callbacks,
	}
}

// ScheduleRun 执行一次运行的全部作业，阻塞到所有作业终态，
// 最后推送运行级聚合状态（任一作业失败即整体失败）
func (s *RunScheduler) ScheduleRun(req *jobrpc.ExecuteRunRequest) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maxParallel := req.MaxParallel
	if maxParallel <= 0 {
		maxParallel = workflow.DefaultMaxParallel
	}
	sem := make(chan struct{}, maxParallel)

	var wg sync.WaitGroup
	statuses := make([]string, len(req.Jobs))

	for i, job := range req.Jobs {
		wg.Add(1)
		go func(i int, job workflow.Job) {
			defer wg.Done()
			statuses[i] = s.runJob(ctx, cancel, sem, req, job)
		}(i, job)
	}
	wg.Wait()

	runStatus := jobrpc.StatusSuccess
	for _, status := range statuses {
		if status != jobrpc.StatusSuccess {
			runStatus = jobrpc.StatusFailed
			break
		}
	}
	s.pushRun(&jobrpc.RunStatusUpdate{RunUUID: req.RunUUID, Status: runStatus})
	return nil
}

func (s *RunScheduler) runJob(ctx context.Context, cancel context.CancelFunc, sem chan struct{}, req *jobrpc.ExecuteRunRequest, job workflow.Job) string {
	// 等并发名额；fail-fast 已触发时不再开新作业
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		s.pushJob(req.RunUUID, job.ID, jobrpc.StatusCancelled, "")
		return jobrpc.StatusCancelled
	}
	defer func() { <-sem }()

	// 名额和取消同时就绪时 select 可能选中名额，这里再确认一次
	if ctx.Err() != nil {
		s.pushJob(req.RunUUID, job.ID, jobrpc.StatusCancelled, "")
		return jobrpc.StatusCancelled
	}

	s.pushJob(req.RunUUID, job.ID, jobrpc.StatusRunning, "")

	// 每个作业一个独立工作目录，终态后即丢弃。
	// 建目录失败等同于作业失败，fail-fast 也要照常触发
	workspace, err := os.MkdirTemp("", "weft-job-")
	if err != nil {
		s.logger.Error("create workspace failed",
			zap.String("run_uuid", req.RunUUID),
			zap.String("job_id", job.ID),
			zap.Error(err))
		s.pushJob(req.RunUUID, job.ID, jobrpc.StatusFailed, "workspace")
		if req.FailFast {
			cancel()
		}
		return jobrpc.StatusFailed
	}
	defer os.RemoveAll(workspace)

	image := req.Images[job.Axes[workflow.OSAxis]]
	if image == "" {
		image = s.defaultImage
	}

	jobStatus := jobrpc.StatusSuccess
	failedStep := ""

	for _, step := range job.Steps {
		switch {
		case step.Report:
			stepStatus, fatal := s.runReportStep(ctx, req, job, workspace, jobStatus)
			s.pushStep(req.RunUUID, job.ID, step.Name, stepStatus, "", "")
			if fatal {
				jobStatus = jobrpc.StatusFailed
				failedStep = step.Name
			}

		case jobStatus != jobrpc.StatusSuccess:
			// 前序步骤已失败，后面的全部跳过
			s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusSkipped, "", "")

		case ctx.Err() != nil:
			jobStatus = jobrpc.StatusCancelled
			s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusCancelled, "", "")

		default:
			s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusRunning, "", "")
			result, err := s.engine.ExecuteStep(ctx, engine.StepRequest{
				Image:     image,
				Command:   step.Command,
				Env:       step.Env,
				Workspace: workspace,
			})
			if err != nil {
				if ctx.Err() != nil {
					jobStatus = jobrpc.StatusCancelled
					s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusCancelled, "", "")
					continue
				}
				jobStatus = jobrpc.StatusFailed
				failedStep = step.Name
				s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusFailed, "", err.Error())
				continue
			}
			if result.Status != "success" {
				jobStatus = jobrpc.StatusFailed
				failedStep = step.Name
				s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusFailed, result.Stdout, result.Stderr)
				continue
			}
			s.pushStep(req.RunUUID, job.ID, step.Name, jobrpc.StatusSuccess, result.Stdout, result.Stderr)
		}
	}

	s.pushJob(req.RunUUID, job.ID, jobStatus, failedStep)

	if jobStatus == jobrpc.StatusFailed && req.FailFast {
		cancel()
	}
	return jobStatus
}

// runReportStep 上报覆盖率。上传失败默认只降级成告警，不影响作业结果；
// 只有显式配了 fail_on_error 才算致命
func (s *RunScheduler) runReportStep(ctx context.Context, req *jobrpc.ExecuteRunRequest, job workflow.Job, workspace, jobStatus string) (string, bool) {
	if req.Report == nil || jobStatus != jobrpc.StatusSuccess {
		return jobrpc.StatusSkipped, false
	}
	if req.Report.Secret != "" && req.ReportToken == "" {
		s.logger.Warn("report secret not provided, skip upload",
			zap.String("run_uuid", req.RunUUID),
			zap.String("job_id", job.ID))
		return jobrpc.StatusSkipped, false
	}

	artifact := filepath.Join(workspace, req.Report.Coverage)
	err := s.reporter.Upload(ctx, artifact, req.Report, req.ReportToken)
	if err == nil {
		return jobrpc.StatusSuccess, false
	}
	if req.Report.FailOnError {
		return jobrpc.StatusFailed, true
	}
	s.logger.Warn("coverage upload failed",
		zap.String("run_uuid", req.RunUUID),
		zap.String("job_id", job.ID),
		zap.Error(err))
	return jobrpc.StatusFailed, false
}

func (s *RunScheduler) pushStep(runUUID, jobID, stepName, status, stdout, stderr string) {
	err := s.callbacks.StepStatus(&jobrpc.StepStatusUpdate{
		RunUUID:  runUUID,
		JobID:    jobID,
		StepName: stepName,
		Status:   status,
		Stdout:   stdout,
		Stderr:   stderr,
	})
	if err != nil {
		s.logger.Warn("push step status failed", zap.Error(err))
	}
}

func (s *RunScheduler) pushJob(runUUID, jobID, status, failedStep string) {
	err := s.callbacks.JobStatus(&jobrpc.JobStatusUpdate{
		RunUUID:    runUUID,
		JobID:      jobID,
		Status:     status,
		FailedStep: failedStep,
	})
	if err != nil {
		s.logger.Warn("push job status failed", zap.Error(err))
	}
}

func (s *RunScheduler) pushRun(update *jobrpc.RunStatusUpdate) {
	if err := s.callbacks.RunStatus(update); err != nil {
		s.logger.Warn("push run status failed", zap.Error(err))
	}
}
