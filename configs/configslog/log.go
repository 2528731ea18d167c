package configslog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) loglama için, SLog printf tarzı loglama için kullanılır.
// InitLogger çağrılana kadar no-op logger'dır, böylece testler ve araçlar güvenle loglayabilir.
var (
	Log  *zap.Logger        = zap.NewNop()
	SLog *zap.SugaredLogger = Log.Sugar()
)

// InitLogger global logger'ları ortam değişkenlerine göre kurar.
// APP_ENV=development veya LOG_DEV=1 konsol çıktısı verir, aksi halde JSON.
func InitLogger() {
	dev := strings.EqualFold(os.Getenv("APP_ENV"), "development") || os.Getenv("LOG_DEV") == "1"
	level := levelFromString(os.Getenv("LOG_LEVEL"), dev)

	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		// Logger kurulamazsa stdout'a yazan basit bir logger ile devam et
		logger = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			level,
		))
		logger.Warn("Logger yapılandırması başarısız, varsayılan logger kullanılıyor", zap.Error(err))
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları boşaltır. main içinde defer ile çağrılmalı.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func levelFromString(l string, dev bool) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	if dev {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}
