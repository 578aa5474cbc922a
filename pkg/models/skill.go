package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillCategory string

// The category set is closed: persisted and transmitted values use exactly
// these four literals.
const (
	SkillCategoryFrontend SkillCategory = "Frontend"
	SkillCategoryBackend  SkillCategory = "Backend"
	SkillCategoryTools    SkillCategory = "Tools"
	SkillCategorySoft     SkillCategory = "Soft"
)

// ValidSkillCategory reports whether c is one of the four fixed categories.
func ValidSkillCategory(c SkillCategory) bool {
	switch c {
	case SkillCategoryFrontend, SkillCategoryBackend, SkillCategoryTools, SkillCategorySoft:
		return true
	}
	return false
}

// Skill is keyed by name. Sync uses get-or-create semantics only: once a skill
// exists its category is never overwritten by the sync path.
type Skill struct {
	ID       uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string        `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Category SkillCategory `json:"category" gorm:"type:varchar(50);not null;default:'Soft'"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SkillRequest — API input for skill create/update; the row id always comes
// from the URL, never from the body.
type SkillRequest struct {
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
}
