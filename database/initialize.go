package database

import (
	"ccaportal/configs/configslog"
	"ccaportal/database/migrations"
	"ccaportal/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Neither migrate nor seed flag given, nothing to do.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Failed to begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Database initialization failed (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Rolling back due to an error during initialization.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Additional error during rollback", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Database initialization starting...")

	if migrate {
		configslog.SLog.Info("Running migrations...")
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migration failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Migrations completed.")
	} else {
		configslog.SLog.Info("Migrate flag not given, skipping migration step.")
	}

	if seed {
		configslog.SLog.Info("Running seeders...")
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("Seeders completed.")
	} else {
		configslog.SLog.Info("Seed flag not given, skipping seeder step.")
	}

	configslog.SLog.Info("Committing transaction...")
	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("Database initialization completed successfully")
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Running migrations in order...")

	configslog.SLog.Info(" -> Running account migrations...")
	if err := migrations.MigrateAccountTables(db); err != nil {
		configslog.Log.Error("Account tables migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Account migrations completed.")

	configslog.SLog.Info(" -> Running form migrations...")
	if err := migrations.MigrateFormsTable(db); err != nil {
		configslog.Log.Error("Forms table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Form migrations completed.")

	configslog.SLog.Info(" -> Running submission migrations...")
	if err := migrations.MigrateSubmissionsTable(db); err != nil {
		configslog.Log.Error("Submissions table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Submission migrations completed.")

	configslog.SLog.Info(" -> Running file migrations...")
	if err := migrations.MigrateFilesTable(db); err != nil {
		configslog.Log.Error("Files table migration failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> File migrations completed.")

	configslog.SLog.Info("All migrations ran successfully.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info(" -> Running admin account seeder...")
	if err := seeders.SeedAdminAccount(db); err != nil {
		configslog.Log.Error("Admin account seeding failed", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Admin account seeder completed.")

	configslog.SLog.Info("All seeders checked/ran successfully.")
	return nil
}
