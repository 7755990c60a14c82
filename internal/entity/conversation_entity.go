package entity

import (
	"time"

	"career-discovery-be/pkg/counselor"

	"github.com/google/uuid"
)

type ConversationSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Phase     counselor.Phase
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ConversationMessage is a displayed message: cleaned assistant text or the
// student's own words. Append-only, chronological.
type ConversationMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// PromptMessage is one entry of the raw outbound history buffer sent to the
// chat gateway: the system seed, the synthetic start turn, user turns, and
// assistant replies with their tags still embedded.
type PromptMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

type StudentNote struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Category  string
	Title     string
	Content   string
	CreatedAt time.Time
}
