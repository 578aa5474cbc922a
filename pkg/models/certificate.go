package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is an independent entity, untouched by the sync path. The
// credential file (if any) lives in R2; CredentialFile holds its public URL.
type Certificate struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null"`
	Issuer         string    `json:"issuer" gorm:"type:varchar(200);not null"`
	CredentialURL  string    `json:"credential_url" gorm:"type:varchar(500)"`
	CredentialFile string    `json:"credential_file" gorm:"type:varchar(500)"`
	IssueDate      time.Time `json:"issue_date" gorm:"type:date"`
	Source         string    `json:"source" gorm:"type:varchar(50);not null;default:'Manual'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CertificateRequest — API input for certificate create/update.
type CertificateRequest struct {
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	CredentialURL string `json:"credential_url"`
	IssueDate     string `json:"issue_date"` // YYYY-MM-DD
	Source        string `json:"source"`
}
