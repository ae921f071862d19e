package main

import (
	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/database"
	"github.com/SeakMengs/RenovaSite/internal/env"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: host=%s port=%s database=%s", cfg.DB.DB_HOST, cfg.DB.DB_PORT, cfg.DB.DB_DATABASE)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`).Error; err != nil {
		logger.Panic(err)
	}

	if err := db.AutoMigrate(model.Models()...); err != nil {
		logger.Panic(err)
	}

	// Seed the settings row once; an existing row is left untouched.
	settings := model.DefaultSiteSettings()
	settings.ID = constant.SITE_SETTINGS_ID
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error; err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration finished")
}
