package dao

import (
	"context"
	"errors"
	"weft/internal/server/model"

	"gorm.io/gorm"
)

type JobDao interface {
	CreateBatch(ctx context.Context, jobs []*model.JobRun) error
	Upsert(ctx context.Context, job *model.JobRun) error
	GetByRunUUID(ctx context.Context, uuid string) ([]*model.JobRun, error)
}

type jobDAO struct {
}

func NewJobDao() JobDao {
	return &jobDAO{}
}

func (d *jobDAO) CreateBatch(ctx context.Context, jobs []*model.JobRun) error {
	if len(jobs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(jobs).Error
}

func (d *jobDAO) Upsert(ctx context.Context, newJob *model.JobRun) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.JobRun
		if err := tx.Where("run_uuid = ? AND job_id = ?", newJob.RunUUID, newJob.JobID).Take(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(newJob).Error
			}
			return err
		}

		job.Status = newJob.Status
		job.FailedStep = newJob.FailedStep

		return tx.Save(&job).Error
	})
}

func (d *jobDAO) GetByRunUUID(ctx context.Context, uuid string) ([]*model.JobRun, error) {
	var jobs []*model.JobRun
	if err := db.WithContext(ctx).Where("run_uuid = ?", uuid).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
