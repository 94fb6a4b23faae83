package repository

import (
	"fmt"
	app "galleryserv/src/app"
	cfg "galleryserv/src/configuration"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGalleryDataBase opens the metadata store and runs migrations.
func NewGalleryDataBase(config *cfg.Properties) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("config is not valid")
	}

	db, err := gorm.Open(postgres.Open(config.DB.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection successfully opened.")

	if err := db.AutoMigrate(&app.User{}, &app.Album{}, &app.Image{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
