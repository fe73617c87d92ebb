package model

import (
	"gorm.io/gorm"
)

type Workflow struct {
	gorm.Model
	Name        string `gorm:"varchar(255);not null;uniqueIndex:idx_name_version"`
	Description string `gorm:"type:text"`
	Version     int    `gorm:"not null;uniqueIndex:idx_name_version"`
	Config      string `gorm:"type:text;not null"`
}
