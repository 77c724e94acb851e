package db

import (
	"github.com/RoyceAzure/lab/foodorder/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// InitMigrate 冪等, 測試與本機開發使用, 正式環境走 migrations 目錄
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.Restaurant{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
	)
}
