// internal/storage/db.go
package storage

import (
	"fmt"
	"log"

	"portfolio-service/internal/config"
	"portfolio-service/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Project{},
		&models.Certificate{},
		&models.Skill{},
		&models.SyncConfig{},
		&models.SyncEvent{},
	)
	if err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ Portfolio DB connected & migrated")

	// Seed the singleton profile after migration
	if err := seedDefaultProfile(db); err != nil {
		log.Printf("⚠️ Failed to seed default profile: %v", err)
	}
}

func GetDB() *gorm.DB {
	return db
}
