// models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the user-editable page shown to other users: a photo,
// contact links, a free-text description and hobbies. One per user,
// provisioned with defaults when the account is verified.
type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	ImagePath   string `gorm:"default:'images/default.jpg'" json:"image_path"`
	Description string `json:"description"`
	Hobby       string `json:"hobby"`
	City        string `json:"city"`

	ContactEmail    string `json:"contact_email"`
	ContactVK       string `json:"contact_vk"`
	ContactTelegram string `json:"contact_telegram"`
	ContactDiscord  string `json:"contact_discord"`
	ContactOther    string `json:"contact_other"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
