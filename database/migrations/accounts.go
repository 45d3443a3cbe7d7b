package migrations

import (
	"ccaportal/configs/configslog"
	"ccaportal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAccountTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating societies & cca_accounts tables...")
	err := db.AutoMigrate(&models.Society{}, &models.CCAAccount{})
	if err != nil {
		configslog.Log.Error("Failed to migrate societies & cca_accounts tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Societies & cca_accounts tables migrated successfully")
	return nil
}
