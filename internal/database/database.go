package database

import (
	"log"

	"github.com/campus-connect/campus-events-api/internal/config"
	"github.com/campus-connect/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	// TranslateError turns driver unique-constraint failures into
	// gorm.ErrDuplicatedKey, which the store maps to a typed conflict.
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
