package dto

import (
	"time"

	"career-discovery-be/pkg/counselor"

	"github.com/google/uuid"
)

type MessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type NoteDTO struct {
	Id        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationStateResponse is the aggregate the UI renders: everything the
// conversation owns plus the volatile voice flags.
type ConversationStateResponse struct {
	SessionId    uuid.UUID       `json:"session_id"`
	Phase        counselor.Phase `json:"phase"`
	Messages     []MessageDTO    `json:"messages"`
	Notes        []NoteDTO       `json:"notes"`
	Report       *ReportDTO      `json:"report,omitempty"`
	IsListening  bool            `json:"is_listening"`
	IsSpeaking   bool            `json:"is_speaking"`
	IsProcessing bool            `json:"is_processing"`
	Transcript   string          `json:"transcript,omitempty"`

	// SpeakText is the cleaned assistant text of the turn just produced,
	// for the client's text-to-speech. Empty outside Start/SendMessage.
	SpeakText string `json:"speak_text,omitempty"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

type TranscriptRequest struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

// PublishReportGeneratedMessage rides the in-process bus from the turn that
// stored a report to the consumer that fans it out.
type PublishReportGeneratedMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}
