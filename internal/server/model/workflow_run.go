package model

import (
	"gorm.io/gorm"
)

type WorkflowRun struct {
	gorm.Model
	RunUUID     string `gorm:"not null;type:varchar(50);uniqueIndex"`
	WorkflowID  uint   `gorm:"not null;index"`
	Version     int    `gorm:"not null"`
	TriggerType string `gorm:"type:varchar(20);not null"` // manual/push/pull_request/schedule
	Status      string `gorm:"type:varchar(20);not null"` // running/success/failed
	JobCount    int    `gorm:"not null"`
}
