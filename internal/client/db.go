package client

import (
	"time"

	"preorder-service/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool (verification and polling hit the same rows)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Store{},
		&model.Bundle{},
		&model.Bank{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
