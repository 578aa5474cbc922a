// portfolio-service/internal/storage/seed.go

package storage

import (
	"log"

	"portfolio-service/pkg/models"

	"gorm.io/gorm"
)

// seedDefaultProfile creates the singleton profile row if none exists yet.
// The profile is read via "first" everywhere, so one placeholder row is enough
// for a fresh database; the admin edits it afterwards.
func seedDefaultProfile(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("ℹ️ Profile already present (%d rows), skipping seed", count)
		return nil
	}

	profile := models.Profile{
		FullName:   "Your Name",
		Role:       "Developer",
		Bio:        "Tell visitors about yourself.",
		ProfilePic: "https://via.placeholder.com/300",
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded default profile (id=%s)", profile.ID)
	return nil
}
