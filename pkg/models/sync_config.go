package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SyncConfig stores synchronization metadata (e.g. last pull sync watermark).
type SyncConfig struct {
	Key   string `json:"key" gorm:"primaryKey;type:varchar(255)"`
	Value string `json:"value" gorm:"type:text"`
}

// SyncEvent is an audit row written by the webhook ingestor, one per received
// event, with the raw payload kept for diagnostics.
type SyncEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Source    string         `json:"source" gorm:"type:varchar(50);not null"`
	Action    string         `json:"action" gorm:"type:varchar(20);not null"` // created | updated | ignored
	RepoURL   string         `json:"repo_url" gorm:"type:varchar(500)"`
	Payload   datatypes.JSON `json:"payload,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}

func (e *SyncEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
