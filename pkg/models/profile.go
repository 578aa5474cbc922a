package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the single owner record for the portfolio. Exactly one row is
// expected; reads always go through "first". Created by the startup seed or an
// admin, never by the sync path.
type Profile struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FullName       string    `json:"full_name" gorm:"type:varchar(100);not null;default:'Your Name'"`
	Role           string    `json:"role" gorm:"type:varchar(150);not null;default:'Developer'"`
	Bio            string    `json:"bio" gorm:"type:text"`
	ProfilePic     string    `json:"profile_pic" gorm:"type:varchar(500)"`
	Email          string    `json:"email" gorm:"type:varchar(255)"`
	LinkedinURL    string    `json:"linkedin_url" gorm:"type:varchar(500)"`
	DiscordURL     string    `json:"discord_url" gorm:"type:varchar(500)"`
	InstagramURL   string    `json:"instagram_url" gorm:"type:varchar(500)"`
	WhatsappNumber string    `json:"whatsapp_number" gorm:"type:varchar(30)"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProfileUpdateRequest — API input for partial profile updates (JSON path).
type ProfileUpdateRequest struct {
	FullName       *string `json:"full_name,omitempty"`
	Role           *string `json:"role,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePic     *string `json:"profile_pic,omitempty"`
	Email          *string `json:"email,omitempty"`
	LinkedinURL    *string `json:"linkedin_url,omitempty"`
	DiscordURL     *string `json:"discord_url,omitempty"`
	InstagramURL   *string `json:"instagram_url,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
}
