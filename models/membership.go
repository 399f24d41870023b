// models/membership.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership marks a user as an active member of a team. A (user, team)
// pair must never exist here and in Application at the same time.
type Membership struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TeamID uuid.UUID `gorm:"type:uuid;primaryKey" json:"team_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Team   *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Membership) TableName() string {
	return "team_members"
}

// Application is a pending join request, removed on accept or reject.
type Application struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TeamID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"team_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Team        *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	CoverLetter string    `json:"cover_letter"`

	CreatedAt time.Time `json:"created_at"`
}

func (Application) TableName() string {
	return "applications_to_join"
}
