package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardify.app/configs"
	"cardify.app/configs/configsdatabase"
	"cardify.app/configs/configslog"
	"cardify.app/pkg/certstore"
	"cardify.app/routes"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg, err := configs.LoadConfig()
	if err != nil {
		configslog.Log.Fatal("Yapılandırma yüklenemedi", zap.Error(err))
	}

	if err := configsdatabase.InitDB(cfg.DB, cfg.IsDevelopment()); err != nil {
		configslog.Log.Fatal("Veritabanı başlatılamadı", zap.Error(err))
	}
	defer configsdatabase.CloseDB()

	certs, err := certstore.NewFromConfig(cfg.Certs)
	if err != nil {
		configsdatabase.CloseDB()
		configslog.Log.Fatal("Sertifika sağlayıcı oluşturulamadı", zap.String("store", cfg.Certs.Store), zap.Error(err))
	}

	deps := routes.NewDependencies(configsdatabase.GetDB(), cfg, certs)
	app := routes.NewApp(deps)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	configslog.SLog.Infof("Sunucu başlatılıyor: :%s (env=%s)", cfg.Port, cfg.Env)
	if err := routes.Serve(app, ":"+cfg.Port, quit, shutdownTimeout); err != nil {
		configsdatabase.CloseDB()
		configslog.Log.Fatal("Sunucu çalıştırılamadı", zap.String("port", cfg.Port), zap.Error(err))
	}
	configslog.SLog.Info("Sunucu kapatıldı.")
}
