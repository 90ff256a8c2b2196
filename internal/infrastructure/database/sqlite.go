package database

import (
	"fmt"
	"os"
	"path/filepath"

	"vr-therapy-platform/config"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection opens the single-file store used on a single device.
// The pool is pinned to one connection so writes are serialized.
func NewSQLiteConnection(cfg config.SQLiteConfig, env string) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newGormLogger(env),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	logrus.Infof("Using SQLite store at %s", cfg.Path)

	return db, nil
}

func newGormLogger(env string) logger.Interface {
	if env == "development" {
		return logger.Default.LogMode(logger.Warn)
	}
	return logger.Default.LogMode(logger.Silent)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
