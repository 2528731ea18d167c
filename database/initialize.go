package database

import (
	"errors"

	"cardify.app/configs/configslog"
	"cardify.app/database/migrations"
	"cardify.app/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyon ve seeder adımlarını tek bir transaction içinde çalıştırır.
// Herhangi bir adım başarısız olursa tüm işlem geri alınır.
func Initialize(db *gorm.DB, migrate bool, seed bool, demo seeders.DemoAccount) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			configslog.SLog.Info("Migrasyonlar çalıştırılıyor...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrasyonlar tamamlandı.")
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
			if err := CheckAndRunSeeders(tx, demo); err != nil {
				configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeder'lar tamamlandı.")
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alındı.")
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

// RunMigrationsInOrder tabloları bağımlılık sırasına göre oluşturur.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	configslog.SLog.Info(" -> User migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateUsersTable(db); err != nil {
		configslog.Log.Error("Users tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> User migrasyonları tamamlandı.")

	configslog.SLog.Info(" -> Card migrasyonları çalıştırılıyor...")
	if err := migrations.MigrateCardsTable(db); err != nil {
		configslog.Log.Error("Cards tablosu migrasyonu başarısız oldu", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Card migrasyonları tamamlandı.")

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

// CheckAndRunSeeders demo hesabı tanımlıysa demo kullanıcı ve kartını oluşturur.
func CheckAndRunSeeders(db *gorm.DB, demo seeders.DemoAccount) error {
	if !demo.Enabled() {
		configslog.SLog.Info("Demo hesabı tanımlı değil (DEMO_USER_EMAIL/DEMO_USER_PASSWORD), seed atlanıyor.")
		return nil
	}

	configslog.SLog.Info(" -> Demo kullanıcı seeder çalıştırılıyor...")
	user, err := seeders.SeedDemoUser(db, demo)
	if err != nil {
		configslog.Log.Error("Demo kullanıcı seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Demo kullanıcı seeder tamamlandı.")

	configslog.SLog.Info(" -> Demo kart seeder çalıştırılıyor...")
	if err := seeders.SeedDemoCard(db, user); err != nil {
		if errors.Is(err, seeders.ErrSeedSkipped) {
			configslog.SLog.Info(" -> Demo kart zaten mevcut, atlanıyor.")
			return nil
		}
		configslog.Log.Error("Demo kart seed edilemedi", zap.Error(err))
		return err
	}
	configslog.SLog.Info(" -> Demo kart seeder tamamlandı.")

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
