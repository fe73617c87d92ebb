package model

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"unique;varchar(255);not null"`
	Password string `gorm:"varchar(255);not null"`
	Role     string `gorm:"type:varchar(20);not null;default:'viewer'"` // viewer/executor
}
