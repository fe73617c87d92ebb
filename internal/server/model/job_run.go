package model

import "gorm.io/gorm"

type JobRun struct {
	gorm.Model
	RunUUID    string `gorm:"not null;type:varchar(50);uniqueIndex:idx_run_uuid_job_id"`
	JobID      string `gorm:"type:varchar(191);not null;uniqueIndex:idx_run_uuid_job_id"`
	Status     string `gorm:"type:varchar(20);not null"` // pending/running/success/failed/cancelled
	FailedStep string `gorm:"type:varchar(191)"`
}
