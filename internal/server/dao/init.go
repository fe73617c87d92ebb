package dao

import (
	"fmt"
	"weft/internal/common"
	"weft/internal/server/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB() error {
	cfg := common.GetConfig()
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	database, err := gorm.Open(mysql.Open(dsn))
	if err != nil {
		return err
	}
	return InitWithDB(database)
}

// InitWithDB 测试里用 sqlite 注入
func InitWithDB(database *gorm.DB) error {
	db = database
	return db.AutoMigrate(
		&model.User{},
		&model.Workflow{},
		&model.WorkflowRun{},
		&model.JobRun{},
		&model.StepRun{},
	)
}
