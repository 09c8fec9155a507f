package db

import (
	"growthmarket/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DB, debug bool) (*gorm.DB, error) {
	lv := logger.Warn
	if debug {
		lv = logger.Info
	}

	return gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(lv),
	})
}
