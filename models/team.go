// models/team.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index" json:"owner"`
	Owner           *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Title           string    `gorm:"size:50;not null" json:"title"`
	TypeTeam        string    `gorm:"not null" json:"type_team"`
	NumberOfMembers int       `gorm:"not null" json:"number_of_members"`
	Description     string    `gorm:"type:text" json:"team_description"`
	DeadlineAt      time.Time `json:"team_deadline_at"`
	City            string    `json:"team_city"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags *TeamTags `gorm:"foreignKey:TeamID" json:"tags,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TeamTags holds up to seven free-text tags, one row per team.
type TeamTags struct {
	TeamID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Team   *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Tag1   string    `json:"tag1"`
	Tag2   string    `json:"tag2"`
	Tag3   string    `json:"tag3"`
	Tag4   string    `json:"tag4"`
	Tag5   string    `json:"tag5"`
	Tag6   string    `json:"tag6"`
	Tag7   string    `json:"tag7"`
}

func (TeamTags) TableName() string {
	return "team_tags"
}
