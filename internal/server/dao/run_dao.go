package dao

import (
	"context"
	"errors"
	"weft/internal/server/model"

	"gorm.io/gorm"
)

type RunDao interface {
	Create(ctx context.Context, run *model.WorkflowRun) error
	// 状态更新走 upsert，runner 回调可能先于落库到达
	UpsertStatus(ctx context.Context, run *model.WorkflowRun) error
	GetByUUID(ctx context.Context, uuid string) (*model.WorkflowRun, error)
	GetLatestRuns(ctx context.Context, limit int) ([]*model.WorkflowRun, error)
}

type runDAO struct {
}

func NewRunDao() RunDao {
	return &runDAO{}
}

func (d *runDAO) Create(ctx context.Context, run *model.WorkflowRun) error {
	return db.WithContext(ctx).Create(run).Error
}

func (d *runDAO) UpsertStatus(ctx context.Context, run *model.WorkflowRun) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.WorkflowRun
		if err := tx.Where("run_uuid = ?", run.RunUUID).Take(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(run).Error
			}
			return err
		}
		existing.Status = run.Status
		return tx.Save(&existing).Error
	})
}

func (d *runDAO) GetByUUID(ctx context.Context, uuid string) (*model.WorkflowRun, error) {
	var run model.WorkflowRun
	if err := db.WithContext(ctx).Where("run_uuid = ?", uuid).Take(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (d *runDAO) GetLatestRuns(ctx context.Context, limit int) ([]*model.WorkflowRun, error) {
	var runs []*model.WorkflowRun
	if err := db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
