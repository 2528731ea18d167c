package migrations

import (
	"cardify.app/configs/configslog"
	"cardify.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateCardsTable cards tablosunu, slug üzerindeki benzersiz indeksi ve
// owner_email indeksini oluşturur.
func MigrateCardsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating cards table...")
	err := db.AutoMigrate(&models.Card{})
	if err != nil {
		configslog.Log.Error("Failed to migrate cards table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Cards table migrated successfully")
	return nil
}
