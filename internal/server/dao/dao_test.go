package dao

import (
	"context"
	"path/filepath"
	"testing"
	"weft/internal/common"
	"weft/internal/server/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "weft.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, InitWithDB(database))
}

func TestWorkflowDaoVersions(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewWorkflowDao()

	require.NoError(t, d.Create(ctx, &model.Workflow{Name: "ci", Version: 1, Config: "name: ci"}))
	require.NoError(t, d.Create(ctx, &model.Workflow{Name: "ci", Version: 2, Config: "name: ci\ndescription: v2"}))
	require.NoError(t, d.Create(ctx, &model.Workflow{Name: "nightly", Version: 1, Config: "name: nightly"}))

	newest, err := d.GetNewestVersionByName(ctx, "ci")
	require.NoError(t, err)
	assert.Equal(t, 2, newest.Version)

	all, err := d.GetAllWorkflows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	newests, err := d.GetNewestVersions(ctx)
	require.NoError(t, err)
	require.Len(t, newests, 2)
	versions := map[string]int{}
	for _, wf := range newests {
		versions[wf.Name] = wf.Version
	}
	assert.Equal(t, map[string]int{"ci": 2, "nightly": 1}, versions)
}

func TestWorkflowDaoNotExists(t *testing.T) {
	setupTestDB(t)

	_, err := NewWorkflowDao().GetNewestVersionByName(context.Background(), "ghost")
	require.Error(t, err)
	errNo, ok := err.(common.ErrNo)
	require.True(t, ok)
	assert.Equal(t, common.WorkflowNotExists, errNo.ErrCode)
}

func TestRunDaoUpsertStatus(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewRunDao()

	require.NoError(t, d.Create(ctx, &model.WorkflowRun{
		RunUUID: "uuid-1", WorkflowID: 1, Version: 1,
		TriggerType: "push", Status: "running", JobCount: 3,
	}))

	require.NoError(t, d.UpsertStatus(ctx, &model.WorkflowRun{RunUUID: "uuid-1", Status: "success"}))

	run, err := d.GetByUUID(ctx, "uuid-1")
	require.NoError(t, err)
	assert.Equal(t, "success", run.Status)
	// upsert 只改状态，其余字段保持落库时的值
	assert.Equal(t, 3, run.JobCount)
	assert.Equal(t, "push", run.TriggerType)
}

func TestRunDaoUpsertBeforeCreate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewRunDao()

	// 回调先于落库到达时直接建行
	require.NoError(t, d.UpsertStatus(ctx, &model.WorkflowRun{RunUUID: "uuid-2", Status: "failed"}))

	run, err := d.GetByUUID(ctx, "uuid-2")
	require.NoError(t, err)
	assert.Equal(t, "failed", run.Status)
}

func TestJobDaoUpsert(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewJobDao()

	require.NoError(t, d.CreateBatch(ctx, []*model.JobRun{
		{RunUUID: "uuid-1", JobID: "3.10", Status: "pending"},
		{RunUUID: "uuid-1", JobID: "3.11", Status: "pending"},
	}))

	require.NoError(t, d.Upsert(ctx, &model.JobRun{
		RunUUID: "uuid-1", JobID: "3.10", Status: "failed", FailedStep: "test",
	}))

	jobs, err := d.GetByRunUUID(ctx, "uuid-1")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	byID := map[string]*model.JobRun{}
	for _, job := range jobs {
		byID[job.JobID] = job
	}
	assert.Equal(t, "failed", byID["3.10"].Status)
	assert.Equal(t, "test", byID["3.10"].FailedStep)
	assert.Equal(t, "pending", byID["3.11"].Status)
}

func TestStepDaoUpsertKeepsOrder(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewStepDao()

	for _, name := range []string{"checkout", "install-1", "test"} {
		require.NoError(t, d.Upsert(ctx, &model.StepRun{
			RunUUID: "uuid-1", JobID: "3.10", StepName: name, Status: "running",
		}))
	}
	require.NoError(t, d.Upsert(ctx, &model.StepRun{
		RunUUID: "uuid-1", JobID: "3.10", StepName: "test", Status: "failed", Stderr: "1 failed",
	}))

	steps, err := d.GetByRunUUID(ctx, "uuid-1")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "checkout", steps[0].StepName)
	assert.Equal(t, "install-1", steps[1].StepName)
	assert.Equal(t, "test", steps[2].StepName)
	assert.Equal(t, "failed", steps[2].Status)
	assert.Equal(t, "1 failed", steps[2].Stderr)
}

func TestUserDao(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	d := NewUserDAO()

	require.NoError(t, d.Create(ctx, &model.User{Username: "admin", Password: "hash", Role: "executor"}))

	user, err := d.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "executor", user.Role)

	_, err = d.GetByUsername(ctx, "nobody")
	require.Error(t, err)
}
