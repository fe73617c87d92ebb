package model

import "gorm.io/gorm"

type StepRun struct {
	gorm.Model
	RunUUID  string `gorm:"not null;type:varchar(50);uniqueIndex:idx_run_job_step"`
	JobID    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_run_job_step"`
	StepName string `gorm:"type:varchar(50);not null;uniqueIndex:idx_run_job_step"`
	Status   string `gorm:"type:varchar(20);not null"` // pending/running/success/failed/skipped/cancelled
	Stdout   string `gorm:"type:text"`
	Stderr   string `gorm:"type:text"`
}
