package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WearItem is a faculty wear product listing. The image is held by the
// external image store; only the delivery URL is kept here.
type WearItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ImageURL      string    `gorm:"type:text" json:"image_url"`
	BadgeText     string    `gorm:"size:50" json:"badge_text"`
	StandardPrice float64   `gorm:"not null" json:"standard_price"`
	CustomPrice   float64   `gorm:"not null" json:"custom_price"`
	AddToCartText string    `gorm:"size:100;not null" json:"add_to_cart_text"`
	AddToCartLink string    `gorm:"type:text" json:"add_to_cart_link"`
	BuyNowText    string    `gorm:"size:100;not null" json:"buy_now_text"`
	BuyNowLink    string    `gorm:"type:text" json:"buy_now_link"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (w *WearItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
