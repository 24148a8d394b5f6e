package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Presence values written by heartbeat, sweep and lazy status reads.
// StatusActive is the account-creation value: it doubles as "never seen a
// heartbeat yet" and is overwritten by the first presence write.
const (
	StatusActive  = "active"
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusOffline = "offline"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName    string     `gorm:"size:100;not null" json:"first_name"`
	LastName     string     `gorm:"size:100;not null" json:"last_name"`
	Nickname     string     `gorm:"size:50;uniqueIndex;not null" json:"nickname"`
	Department   string     `gorm:"size:100;not null" json:"department"`
	Level        string     `gorm:"size:20;not null" json:"level"`
	Whatsapp     string     `gorm:"size:11;uniqueIndex;not null" json:"whatsapp"`
	Email        string     `gorm:"size:100" json:"email"`
	Birthday     string     `gorm:"size:5;not null" json:"birthday"` // MM-DD
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Status       string     `gorm:"size:20;not null;default:active;index" json:"status"`
	LastLogin    *time.Time `json:"last_login"`
	LastActive   *time.Time `gorm:"index" json:"last_active"`
	LastSeen     *time.Time `json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
