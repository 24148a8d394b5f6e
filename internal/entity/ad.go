package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SponsoredAd is a time-boxed promotional placement. IsActive is kept
// eventually consistent with ExpiresAt by the expiry sweep; read paths
// re-filter on ExpiresAt and never trust the flag alone.
type SponsoredAd struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string    `gorm:"size:200;not null" json:"title"`
	Description         string    `gorm:"type:text;not null" json:"description"`
	SponsorName         string    `gorm:"size:100;not null" json:"sponsor_name"`
	WhatsappNumber      string    `gorm:"size:20;not null" json:"whatsapp_number"`
	SponsorLogoURL      string    `gorm:"type:text" json:"sponsor_logo_url,omitempty"`
	SponsorLogoPublicID string    `gorm:"size:255" json:"sponsor_logo_public_id,omitempty"`
	AdImageURL          string    `gorm:"type:text" json:"ad_image_url,omitempty"`
	AdImagePublicID     string    `gorm:"size:255" json:"ad_image_public_id,omitempty"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
	ExpiresAt           time.Time `gorm:"index" json:"expires_at"`
	IsActive            bool      `gorm:"index" json:"is_active"`
}

func (a *SponsoredAd) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
