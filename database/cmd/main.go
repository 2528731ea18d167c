package main

import (
	"flag"
	"os"

	"cardify.app/configs"
	"cardify.app/configs/configsdatabase"
	"cardify.app/configs/configslog"
	"cardify.app/database"
	"cardify.app/database/seeders"

	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	migrateFlag := flag.Bool("migrate", false, "Veritabanı başlatma işlemini çalıştır (migrasyonları içerir)")
	seedFlag := flag.Bool("seed", false, "Veritabanı başlatma işlemini çalıştır (seederları içerir)")
	flag.Parse()

	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.Log.Fatal("Yapılandırma yüklenemedi", zap.Error(err))
	}

	if err := configsdatabase.InitDB(cfg.DB, cfg.IsDevelopment()); err != nil {
		configslog.Log.Fatal("Veritabanı başlatılamadı", zap.Error(err))
	}
	defer configsdatabase.CloseDB()

	db := configsdatabase.GetDB()

	demo := seeders.DemoAccount{
		Email:     os.Getenv("DEMO_USER_EMAIL"),
		Password:  os.Getenv("DEMO_USER_PASSWORD"),
		FirstName: os.Getenv("DEMO_USER_FIRST_NAME"),
		LastName:  os.Getenv("DEMO_USER_LAST_NAME"),
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	if err := database.Initialize(db, *migrateFlag, *seedFlag, demo); err != nil {
		configsdatabase.CloseDB()
		configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız", zap.Error(err))
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
}
