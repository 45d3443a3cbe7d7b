package migrations

import (
	"ccaportal/configs/configslog"
	"ccaportal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateFilesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating files table...")
	err := db.AutoMigrate(&models.File{})
	if err != nil {
		configslog.Log.Error("Failed to migrate files table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Files table migrated successfully")
	return nil
}
