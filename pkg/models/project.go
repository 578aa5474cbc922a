package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a portfolio entry, keyed by its canonical GitHub URL. The unique
// index on github_url is the actual safety net under concurrent syncs: two
// racing creators must surface as a constraint rejection, never a duplicate.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GithubURL   string    `json:"github_url" gorm:"type:varchar(500);uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Tags        string    `json:"tags" gorm:"type:varchar(500)"` // comma-joined
	Stars       int       `json:"stars" gorm:"not null;default:0"`
	IsSynced    bool      `json:"is_synced" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TagList splits the comma-joined tags column into trimmed entries.
func (p *Project) TagList() []string {
	tags := []string{}
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ProjectRequest — API input for manual project creation.
type ProjectRequest struct {
	GithubURL   string `json:"github_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Stars       int    `json:"stars"`
}

// ProjectUpdateRequest — API input for partial project updates. Pointers so a
// provided zero value (resetting stars to 0, clearing tags) is
// distinguishable from an absent field.
type ProjectUpdateRequest struct {
	GithubURL   *string `json:"github_url,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tags        *string `json:"tags,omitempty"`
	Stars       *int    `json:"stars,omitempty"`
}
