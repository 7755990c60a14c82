package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CareerReport stores the flattened report snapshot. Array and nested fields
// go through JSON columns; the scalar profile fields stay queryable.
type CareerReport struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	ShareId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;default:gen_random_uuid()"`

	StudentName    string `gorm:"type:text;not null"`
	StudentGrade   string `gorm:"type:text"`
	StudentBoard   string `gorm:"type:text"`
	StudentCountry string `gorm:"type:text"`

	TopInterests     datatypes.JSON `gorm:"type:jsonb"`
	KeyStrengths     datatypes.JSON `gorm:"type:jsonb"`
	RecommendedPaths datatypes.JSON `gorm:"type:jsonb;not null"`
	PersonalityBadge datatypes.JSON `gorm:"type:jsonb"`

	Shared      bool      `gorm:"not null;default:false"`
	Archived    bool      `gorm:"not null;default:false"`
	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CareerReport) TableName() string {
	return "career_reports"
}
