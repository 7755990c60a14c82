package entity

import (
	"time"

	"career-discovery-be/pkg/counselor"

	"github.com/google/uuid"
)

// CareerReport is a persisted report snapshot. ShareId is set by the database
// on insert and is the public, opaque identifier share links carry.
type CareerReport struct {
	Id               uuid.UUID
	SessionId        uuid.UUID
	ShareId          uuid.UUID
	Snapshot         counselor.StudentSnapshot
	RecommendedPaths []counselor.CareerPath
	PersonalityBadge *counselor.PersonalityBadge
	GeneratedAt      time.Time
	Shared           bool

	// Archived marks a shared report that was detached from its conversation
	// by a reset. The share link keeps resolving; the conversation no longer
	// sees it.
	Archived bool
}
