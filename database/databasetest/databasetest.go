// Package databasetest testler için migrasyonları uygulanmış bellek içi SQLite veritabanı açar.
package databasetest

import (
	"testing"
	"time"

	"cardify.app/database/migrations"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New her çağrıda ayrı, boş bir veritabanı döndürür. Bellek içi SQLite bağlantı
// başına ayrı olduğu için havuz tek bağlantıyla sınırlanır.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrations.MigrateUsersTable(db); err != nil {
		t.Fatalf("users migrasyonu başarısız: %v", err)
	}
	if err := migrations.MigrateCardsTable(db); err != nil {
		t.Fatalf("cards migrasyonu başarısız: %v", err)
	}
	return db
}
