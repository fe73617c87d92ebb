package dao

import (
	"context"
	"errors"
	"weft/internal/server/model"

	"gorm.io/gorm"
)

type StepDao interface {
	Upsert(ctx context.Context, step *model.StepRun) error
	GetByRunUUID(ctx context.Context, uuid string) ([]*model.StepRun, error)
}

type stepDAO struct {
}

func NewStepDao() StepDao {
	return &stepDAO{}
}

func (d *stepDAO) Upsert(ctx context.Context, newStep *model.StepRun) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var step model.StepRun
		err := tx.Where("run_uuid = ? AND job_id = ? AND step_name = ?",
			newStep.RunUUID, newStep.JobID, newStep.StepName).Take(&step).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(newStep).Error
			}
			return err
		}

		step.Status = newStep.Status
		step.Stdout = newStep.Stdout
		step.Stderr = newStep.Stderr

		return tx.Save(&step).Error
	})
}

func (d *stepDAO) GetByRunUUID(ctx context.Context, uuid string) ([]*model.StepRun, error) {
	var steps []*model.StepRun
	if err := db.WithContext(ctx).Where("run_uuid = ?", uuid).Order("id ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}
