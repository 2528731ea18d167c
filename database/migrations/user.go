package migrations

import (
	"cardify.app/configs/configslog"
	"cardify.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateUsersTable users tablosunu ve email üzerindeki benzersiz indeksi oluşturur.
func MigrateUsersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating users table...")
	err := db.AutoMigrate(&models.User{})
	if err != nil {
		configslog.Log.Error("Failed to migrate users table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Users table migrated successfully")
	return nil
}
