package events

import "time"

// Event is the contract every outbound domain event satisfies. EventType
// becomes the NATS subject suffix (events.<type>), Payload the JSON body.
type Event interface {
	EventType() string
	Payload() interface{}
}

// ConversationCompleted fires when a session reaches the terminal phase.
type ConversationCompleted struct {
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	StudentName string    `json:"student_name"`
	PathCount   int       `json:"path_count"`
	CompletedAt time.Time `json:"completed_at"`
}

func (e ConversationCompleted) EventType() string    { return "conversation.completed" }
func (e ConversationCompleted) Payload() interface{} { return e }

// ReportGenerated fires when a parsed reply first carried a report.
type ReportGenerated struct {
	SessionID   string    `json:"session_id"`
	StudentName string    `json:"student_name"`
	PathCount   int       `json:"path_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (e ReportGenerated) EventType() string    { return "report.generated" }
func (e ReportGenerated) Payload() interface{} { return e }

// ReportShared fires when a share link is first created for a report.
type ReportShared struct {
	SessionID string    `json:"session_id"`
	ShareID   string    `json:"share_id"`
	SharedAt  time.Time `json:"shared_at"`
}

func (e ReportShared) EventType() string    { return "report.shared" }
func (e ReportShared) Payload() interface{} { return e }
