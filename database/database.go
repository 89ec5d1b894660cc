package database

import (
	"log"
	"os"

	"classroom-app/internal/domain/content"
	"classroom-app/internal/domain/entities"
	"classroom-app/internal/domain/payments"
	"classroom-app/internal/domain/users"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// identities
		&users.User{},

		// owning entities
		&entities.Class{},
		&entities.ClassEnrollment{},
		&entities.Notice{},
		&entities.Quiz{},
		&entities.Game{},

		// content and access
		&content.Item{},
		&content.AccessGrant{},
		&payments.Request{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	zap.L().Info("connected and migrated")
}
