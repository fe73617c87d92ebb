package scheduler

import (
	"context"
	"encoding/json"
	"sync"
	"weft/internal/common"
	"weft/internal/server/dao"
	"weft/internal/server/dispatch"
	"weft/internal/server/model"
	"weft/pkg/workflow"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const WorkflowExecuteTask = "workflow:execute"

type workflowExecutePayload struct {
	WorkflowName string `json:"workflow_name"`
}

var schedulerService *SchedulerService
var once sync.Once

func GetSchedulerService() *SchedulerService {
	once.Do(func() {
		cfg := common.GetConfig()
		scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, nil)
		schedulerService = newSchedulerService(scheduler)
	})
	return schedulerService
}

// SchedulerService 负责 schedule 触发：把带 cron 的工作流注册到 asynq
type SchedulerService struct {
	scheduler     *asynq.Scheduler
	dispatcher    *dispatch.Dispatcher
	mu            sync.Mutex
	scheduledJobs map[string]string // workflow name -> 调度任务ID
}

func newSchedulerService(scheduler *asynq.Scheduler) *SchedulerService {
	return &SchedulerService{
		scheduler:     scheduler,
		scheduledJobs: make(map[string]string),
	}
}

func (s *SchedulerService) SetDispatcher(d *dispatch.Dispatcher) {
	s.dispatcher = d
}

func (s *SchedulerService) Start() error {
	common.GetLogger().Info("starting scheduler")
	return s.scheduler.Start()
}

// UpsertWorkflowSchedule 注册（或替换）一个工作流的 cron 调度；
// 没有 schedule 触发的工作流只做反注册
func (s *SchedulerService) UpsertWorkflowSchedule(wf *model.Workflow, config *workflow.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := common.GetLogger()

	if jobID, exists := s.scheduledJobs[wf.Name]; exists {
		if err := s.scheduler.Unregister(jobID); err != nil {
			logger.Warn("failed to remove existing schedule",
				zap.String("workflow", wf.Name), zap.Error(err))
		}
		delete(s.scheduledJobs, wf.Name)
	}

	if config.On.Schedule == nil || config.On.Schedule.Cron == "" {
		return nil
	}

	payload, err := json.Marshal(workflowExecutePayload{WorkflowName: wf.Name})
	if err != nil {
		return err
	}
	task := asynq.NewTask(WorkflowExecuteTask, payload)
	jobID, err := s.scheduler.Register(config.On.Schedule.Cron, task)
	if err != nil {
		logger.Error("failed to schedule workflow",
			zap.String("workflow", wf.Name), zap.Error(err))
		return common.NewErrNo(common.ScheduleInvalid)
	}

	s.scheduledJobs[wf.Name] = jobID
	logger.Info("scheduled workflow",
		zap.String("workflow", wf.Name),
		zap.String("cron", config.On.Schedule.Cron))
	return nil
}

// LoadAllSchedules 启动时把库里所有带 cron 的工作流注册一遍
func (s *SchedulerService) LoadAllSchedules() error {
	workflows, err := dao.NewWorkflowDao().GetNewestVersions(context.Background())
	if err != nil {
		return err
	}
	for _, wf := range workflows {
		config, err := workflow.ParseConfig(wf.Config)
		if err != nil {
			common.GetLogger().Warn("skip workflow with invalid config",
				zap.String("workflow", wf.Name), zap.Error(err))
			continue
		}
		if err := s.UpsertWorkflowSchedule(wf, config); err != nil {
			common.GetLogger().Warn("failed to schedule workflow",
				zap.String("workflow", wf.Name), zap.Error(err))
		}
	}
	return nil
}

// StartConsumer 消费到点的调度任务并启动运行
func (s *SchedulerService) StartConsumer() error {
	cfg := common.GetConfig()
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{Concurrency: 1})

	mux := asynq.NewServeMux()
	mux.HandleFunc(WorkflowExecuteTask, s.handleWorkflowExecute)
	return srv.Run(mux)
}

func (s *SchedulerService) handleWorkflowExecute(ctx context.Context, task *asynq.Task) error {
	var payload workflowExecutePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	wf, err := dao.NewWorkflowDao().GetNewestVersionByName(ctx, payload.WorkflowName)
	if err != nil {
		return err
	}
	config, err := workflow.ParseConfig(wf.Config)
	if err != nil {
		return err
	}

	_, _, err = s.dispatcher.StartRun(ctx, wf, config, workflow.EventSchedule)
	return err
}
