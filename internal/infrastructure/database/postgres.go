package database

import (
	"fmt"

	"github.com/you/bookstore/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string, logLevel string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), Config(logLevel))
}

// Config returns the gorm configuration shared by every dialector.
// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
func Config(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	}
}

// AutoMigrate performs database migration for all required tables.
// Casbin's gorm adapter creates its own casbin_rule table.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&repositories.DBUser{},
		&repositories.DBOneTimeCode{},
		&repositories.DBBook{},
		&repositories.DBPurchase{},
		&repositories.DBCollection{},
		&repositories.DBCollectionBook{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
