// Package db opens the relational store and keeps its schema current.
package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelstay/internal/model"
)

// Supported drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open connects using the named driver. Query logging goes to log.
func Open(driver, mysqlDSN, sqliteDSN string, log *zap.Logger) (*gorm.DB, error) {
	switch driver {
	case DriverMySQL, "":
		return NewMySQL(mysqlDSN, log)
	case DriverSQLite:
		return NewSQLite(sqliteDSN, log)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Restaurant{},
		&model.FoodItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusChange{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func gormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: NewGormLogger(log),
	}
}
