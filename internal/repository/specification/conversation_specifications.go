package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByShareID struct {
	ShareID uuid.UUID
}

func (s ByShareID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_id = ?", s.ShareID)
}

type ByArchived struct {
	Archived bool
}

func (s ByArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("archived = ?", s.Archived)
}
