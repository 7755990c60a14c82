package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentNote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Category  string    `gorm:"type:text;not null"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (StudentNote) TableName() string {
	return "student_notes"
}
