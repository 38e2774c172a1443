package database

import (
	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding-manager/internal/config"
	"wedding-manager/internal/store"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.AutoMigrate(&store.Row{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate")
	}

	return db
}
