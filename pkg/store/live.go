package store

// LiveState holds the volatile, per-conversation voice and processing flags
// that never touch the database. It lives in the in-memory state repository
// and is rebuilt with zero values after a restart; persisted rows are the
// source of truth for everything else.
type LiveState struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`

	IsListening  bool `json:"is_listening"`
	IsSpeaking   bool `json:"is_speaking"`
	IsProcessing bool `json:"is_processing"`

	// Transcript is the interim (not yet final) speech-to-text text the UI
	// shows while the student is still talking.
	Transcript string `json:"transcript"`

	// Generation tags every gateway request issued for this session. A reply
	// that lands after a reset carries a stale generation and is discarded.
	Generation uint64 `json:"generation"`

	// PendingComplete is set when a reply carried a report; the session moves
	// to the terminal phase once the accompanying speech finishes.
	PendingComplete bool `json:"pending_complete"`
}
