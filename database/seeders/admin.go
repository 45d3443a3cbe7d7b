package seeders

import (
	"errors"
	"os"

	"ccaportal/configs/configslog"
	"ccaportal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAdminAccount makes sure one CCA admin account exists so the portal is
// operable after a fresh migration. Credentials come from the environment;
// an existing account with the same email is left untouched.
func SeedAdminAccount(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@ccaportal.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		configslog.SLog.Warn("ADMIN_PASSWORD not set, seeding admin account with the default password.")
	}

	var existing models.CCAAccount
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Admin account '%s' already exists, skipping creation.", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Database error while checking for admin account",
			zap.String("email", email),
			zap.Error(result.Error),
		)
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Failed to hash admin password", zap.Error(err))
		return err
	}

	admin := models.CCAAccount{
		Name:         "CCA Admin",
		Email:        email,
		Role:         models.CCARoleAdmin,
		Permissions:  datatypes.NewJSONType(models.CCAPermissions{}),
		PasswordHash: string(hash),
		Active:       true,
	}

	configslog.SLog.Infof("Creating admin account '%s'...", email)
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("Failed to create admin account",
			zap.String("email", email),
			zap.Error(err),
		)
		return err
	}

	configslog.SLog.Infof("Admin account '%s' created successfully (ID: %d).", email, admin.ID)
	return nil
}
