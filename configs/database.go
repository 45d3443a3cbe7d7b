package configs

import (
	"time"

	"ccaportal/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// ConnectDB opens the Postgres connection and stores the handle for GetDB.
func ConnectDB(cfg *Config) *gorm.DB {
	logLevel := gormlogger.Warn
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("database handle unavailable", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	configslog.SLog.Info("database connection established")
	return db
}

// GetDB returns the shared *gorm.DB. ConnectDB must run first.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB called before ConnectDB")
	}
	return db
}

// SetDB replaces the shared handle. Used by tests with mock connections.
func SetDB(conn *gorm.DB) {
	db = conn
}
