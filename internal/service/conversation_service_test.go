package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"career-discovery-be/internal/apperr"
	"career-discovery-be/internal/constant"
	"career-discovery-be/internal/dto"
	"career-discovery-be/internal/repository/memory"
	"career-discovery-be/pkg/counselor"
	"career-discovery-be/pkg/llm"

	"github.com/google/uuid"
)

type conversationFixture struct {
	svc      IConversationService
	provider *scriptedProvider
	store    *fakeStore
	liveRepo *memory.LiveStateRepository
	bus      *recordingPublisher
	userId   uuid.UUID
}

func newConversationFixture(replies ...string) *conversationFixture {
	store := &fakeStore{}
	provider := &scriptedProvider{replies: replies}
	liveRepo := memory.NewLiveStateRepository()
	bus := &recordingPublisher{}

	svc := NewConversationService(
		&fakeRepositoryFactory{store: store},
		provider,
		liveRepo,
		bus,
		nil,
		nopLogger{},
		5*time.Second,
	)

	return &conversationFixture{
		svc:      svc,
		provider: provider,
		store:    store,
		liveRepo: liveRepo,
		bus:      bus,
		userId:   uuid.New(),
	}
}

const reportReply = `Here is your report! <REPORT>{
	"studentSnapshot": {"name": "Asha", "grade": "10", "board": "CBSE", "country": "India",
		"topInterests": ["coding"], "keyStrengths": ["logic"]},
	"recommendedPaths": [{"name": "Software Engineer", "cluster": "Technology",
		"fitReasons": ["builds things"], "applicationHints": ["join a hackathon"]}]
}</REPORT><PHASE>summary</PHASE>`

func TestStartSeedsConversation(t *testing.T) {
	f := newConversationFixture("Welcome! What's your name?")

	state, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if state.Phase != counselor.PhaseWelcome {
		t.Errorf("Phase = %q, want welcome", state.Phase)
	}
	if len(state.Messages) != 1 {
		t.Fatalf("Messages = %d, want 1", len(state.Messages))
	}
	if state.Messages[0].Role != constant.MessageRoleAssistant {
		t.Errorf("first message role = %q, want assistant", state.Messages[0].Role)
	}
	if state.SpeakText != "Welcome! What's your name?" {
		t.Errorf("SpeakText = %q", state.SpeakText)
	}
	if !state.IsSpeaking || state.IsProcessing {
		t.Errorf("live flags = speaking:%v processing:%v, want speaking only", state.IsSpeaking, state.IsProcessing)
	}

	// The gateway saw the persona prompt followed by the synthetic opener.
	if len(f.provider.lastSent) != 2 {
		t.Fatalf("gateway history = %d messages, want 2", len(f.provider.lastSent))
	}
	if f.provider.lastSent[0].Role != llm.RoleSystem || !strings.Contains(f.provider.lastSent[0].Content, "career counselor") {
		t.Error("first gateway message should be the persona system prompt")
	}
	if f.provider.lastSent[1].Content != counselor.StartPrompt {
		t.Errorf("second gateway message = %q, want start prompt", f.provider.lastSent[1].Content)
	}

	// Raw history keeps all three turns, displayed log only the reply.
	if len(f.store.prompts) != 3 {
		t.Errorf("prompt rows = %d, want 3", len(f.store.prompts))
	}
	if len(f.store.messages) != 1 {
		t.Errorf("message rows = %d, want 1", len(f.store.messages))
	}
}

func TestSendMessageExtractsTags(t *testing.T) {
	f := newConversationFixture(
		"Hi! Tell me about yourself.",
		`Love that! <NOTE category="interests" title="Coding">Enjoys coding and robotics</NOTE>What are you best at?<PHASE>strengths</PHASE>`,
	)

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	state, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{
		Message: "I love coding and robotics",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if len(state.Messages) != 3 {
		t.Fatalf("Messages = %d, want 3", len(state.Messages))
	}
	last := state.Messages[2]
	if last.Role != constant.MessageRoleAssistant {
		t.Errorf("last role = %q, want assistant", last.Role)
	}
	if strings.Contains(last.Content, "<NOTE") || strings.Contains(last.Content, "<PHASE") {
		t.Errorf("displayed text still contains tags: %q", last.Content)
	}
	if len(state.Notes) != 1 {
		t.Fatalf("Notes = %d, want 1", len(state.Notes))
	}
	if state.Notes[0].Category != "interests" {
		t.Errorf("note category = %q", state.Notes[0].Category)
	}
	if state.Phase != counselor.PhaseStrengths {
		t.Errorf("Phase = %q, want strengths", state.Phase)
	}
	if state.SpeakText != "Love that! What are you best at?" {
		t.Errorf("SpeakText = %q", state.SpeakText)
	}

	// The raw reply with tags intact went into the prompt history.
	rawTail := f.store.prompts[len(f.store.prompts)-1]
	if !strings.Contains(rawTail.Content, "<NOTE") {
		t.Error("raw prompt history should keep the tagged reply")
	}
}

func TestSendMessageBlankIsNoOp(t *testing.T) {
	f := newConversationFixture("Welcome!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	callsAfterStart := f.provider.calls

	state, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{
		Message: "   ",
	})
	if err != nil {
		t.Fatalf("blank SendMessage failed: %v", err)
	}
	if f.provider.calls != callsAfterStart {
		t.Error("blank input should not reach the gateway")
	}
	if len(state.Messages) != len(started.Messages) {
		t.Errorf("Messages = %d, want unchanged %d", len(state.Messages), len(started.Messages))
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	f := newConversationFixture("Welcome!")

	_, err := f.svc.SendMessage(context.Background(), f.userId, uuid.New(), &dto.SendMessageRequest{Message: "hi"})

	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("err = %v, want 404 AppError", err)
	}
}

func TestSendMessageOtherUsersSession(t *testing.T) {
	f := newConversationFixture("Welcome!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, err = f.svc.SendMessage(context.Background(), uuid.New(), started.SessionId, &dto.SendMessageRequest{Message: "hi"})

	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != 404 {
		t.Fatalf("err = %v, want 404 AppError", err)
	}
}

func TestGatewayErrorKeepsUserMessage(t *testing.T) {
	f := newConversationFixture("Welcome!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	f.provider.err = llm.ErrRateLimited
	_, err = f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "hello?"})
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("err = %v, want rate limit sentinel", err)
	}

	// The optimistic append survived the failed round-trip.
	f.provider.err = nil
	state, err := f.svc.GetState(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("GetState failed: %v", err)
	}
	lastMsg := state.Messages[len(state.Messages)-1]
	if lastMsg.Role != constant.MessageRoleUser || lastMsg.Content != "hello?" {
		t.Errorf("last message = %s %q, want retained user turn", lastMsg.Role, lastMsg.Content)
	}
	if state.IsProcessing {
		t.Error("processing flag should be cleared after a failed round-trip")
	}
}

func TestReportFlowReachesComplete(t *testing.T) {
	f := newConversationFixture("Welcome!", reportReply)

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	state, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{
		Message: "Yes, show me the report",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if state.Report == nil {
		t.Fatal("report should be exposed in the state")
	}
	if state.Report.StudentSnapshot.Name != "Asha" {
		t.Errorf("report name = %q", state.Report.StudentSnapshot.Name)
	}
	if state.Report.ShareId != nil {
		t.Error("unshared report must not expose its share id")
	}
	if state.Phase != counselor.PhaseSummary {
		t.Errorf("Phase = %q, want summary until speech finishes", state.Phase)
	}
	if len(f.store.reports) != 1 {
		t.Fatalf("stored reports = %d, want 1", len(f.store.reports))
	}
	if f.store.reports[0].Shared {
		t.Error("report should start unshared")
	}
	if len(f.bus.payloads) != 1 {
		t.Errorf("bus publishes = %d, want 1", len(f.bus.payloads))
	}

	// Terminal phase only after the speech accompanying the report ends.
	state, err = f.svc.SpeechFinished(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("SpeechFinished failed: %v", err)
	}
	if state.Phase != counselor.PhaseComplete {
		t.Errorf("Phase = %q, want complete", state.Phase)
	}
	if state.IsSpeaking {
		t.Error("speaking flag should be cleared")
	}

	// Further messages are rejected.
	_, err = f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "more?"})
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) || appErr.Code != 409 {
		t.Fatalf("err = %v, want 409 AppError", err)
	}

	// SpeechFinished is idempotent once complete.
	state, err = f.svc.SpeechFinished(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("second SpeechFinished failed: %v", err)
	}
	if state.Phase != counselor.PhaseComplete {
		t.Errorf("Phase = %q, want complete to stick", state.Phase)
	}
}

func TestDuplicateReportIsIgnored(t *testing.T) {
	f := newConversationFixture("Welcome!", reportReply, reportReply)

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "report please"}); err != nil {
		t.Fatalf("first SendMessage failed: %v", err)
	}
	firstId := f.store.reports[0].Id

	// Speech has not finished, so the session is still conversational and a
	// second report-bearing reply can arrive.
	if _, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "again"}); err != nil {
		t.Fatalf("second SendMessage failed: %v", err)
	}

	if len(f.store.reports) != 1 {
		t.Fatalf("stored reports = %d, want the first to stand", len(f.store.reports))
	}
	if f.store.reports[0].Id != firstId {
		t.Error("original report should not be replaced")
	}
	if len(f.bus.payloads) != 1 {
		t.Errorf("bus publishes = %d, want only the first report announced", len(f.bus.payloads))
	}
}

func TestResetClearsEverything(t *testing.T) {
	f := newConversationFixture("Welcome!", reportReply)

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "report please"}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	state, err := f.svc.Reset(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if state.Phase != counselor.PhaseWelcome {
		t.Errorf("Phase = %q, want welcome", state.Phase)
	}
	if len(state.Messages) != 0 || len(state.Notes) != 0 || state.Report != nil {
		t.Error("reset should clear messages, notes and the report")
	}
	if state.IsSpeaking || state.IsListening || state.IsProcessing || state.Transcript != "" {
		t.Error("reset should clear all live flags")
	}
	if len(f.store.reports) != 0 {
		t.Errorf("report rows = %d, want 0 for a never-shared report", len(f.store.reports))
	}

	// Only the persona prompt remains seeded for the next round.
	if len(f.store.prompts) != 1 {
		t.Fatalf("prompt rows = %d, want only the system seed", len(f.store.prompts))
	}
	if f.store.prompts[0].Role != constant.MessageRoleSystem {
		t.Errorf("remaining prompt role = %q, want system", f.store.prompts[0].Role)
	}
}

func TestResetDuringRoundTripDiscardsReply(t *testing.T) {
	f := newConversationFixture("Welcome!", "Great, tell me more!<PHASE>interests</PHASE>", "This reply must be discarded")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "hi"}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// Simulate a reset racing the in-flight request.
	f.provider.onChat = func() {
		if f.provider.calls != 3 {
			return
		}
		if _, err := f.svc.Reset(context.Background(), f.userId, started.SessionId); err != nil {
			t.Errorf("Reset failed: %v", err)
		}
	}

	state, err := f.svc.SendMessage(context.Background(), f.userId, started.SessionId, &dto.SendMessageRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	for _, m := range state.Messages {
		if strings.Contains(m.Content, "discarded") {
			t.Error("stale reply leaked into the conversation")
		}
	}
	if len(f.store.messages) != 0 {
		t.Errorf("message rows = %d, want 0 after reset won the race", len(f.store.messages))
	}
	// The response must describe the conversation as the reset left it, not
	// as it looked before the gateway call went out.
	if state.Phase != counselor.PhaseWelcome {
		t.Errorf("Phase = %q, want %q", state.Phase, counselor.PhaseWelcome)
	}
}

func TestTranscriptLifecycle(t *testing.T) {
	f := newConversationFixture("Welcome!", "Robotics sounds great!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	state, err := f.svc.StartListening(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("StartListening failed: %v", err)
	}
	if !state.IsListening {
		t.Error("IsListening should be set")
	}

	// Interim transcript is surfaced but never becomes a message.
	state, err = f.svc.UpdateTranscript(context.Background(), f.userId, started.SessionId, &dto.TranscriptRequest{
		Text: "I like robo",
	})
	if err != nil {
		t.Fatalf("interim UpdateTranscript failed: %v", err)
	}
	if state.Transcript != "I like robo" {
		t.Errorf("Transcript = %q", state.Transcript)
	}
	if len(state.Messages) != 1 {
		t.Errorf("interim transcript created a message")
	}

	// A final transcript is a full user turn.
	state, err = f.svc.UpdateTranscript(context.Background(), f.userId, started.SessionId, &dto.TranscriptRequest{
		Text:    "I like robotics",
		IsFinal: true,
	})
	if err != nil {
		t.Fatalf("final UpdateTranscript failed: %v", err)
	}
	if state.Transcript != "" {
		t.Errorf("Transcript = %q, want cleared", state.Transcript)
	}
	if len(state.Messages) != 3 {
		t.Fatalf("Messages = %d, want user turn plus reply", len(state.Messages))
	}
	if state.Messages[1].Content != "I like robotics" {
		t.Errorf("user turn = %q", state.Messages[1].Content)
	}
}

func TestStopListeningFlushesPendingTranscript(t *testing.T) {
	f := newConversationFixture("Welcome!", "Got it!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, err := f.svc.StartListening(context.Background(), f.userId, started.SessionId); err != nil {
		t.Fatalf("StartListening failed: %v", err)
	}
	if _, err := f.svc.UpdateTranscript(context.Background(), f.userId, started.SessionId, &dto.TranscriptRequest{
		Text: "I enjoy painting",
	}); err != nil {
		t.Fatalf("UpdateTranscript failed: %v", err)
	}

	state, err := f.svc.StopListening(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("StopListening failed: %v", err)
	}

	if state.IsListening {
		t.Error("IsListening should be cleared")
	}
	if len(state.Messages) != 3 {
		t.Fatalf("Messages = %d, want pending transcript flushed as a turn", len(state.Messages))
	}
	if state.Messages[1].Content != "I enjoy painting" {
		t.Errorf("flushed turn = %q", state.Messages[1].Content)
	}
}

func TestStopListeningWithoutTranscript(t *testing.T) {
	f := newConversationFixture("Welcome!")

	started, err := f.svc.Start(context.Background(), f.userId)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	callsAfterStart := f.provider.calls

	if _, err := f.svc.StartListening(context.Background(), f.userId, started.SessionId); err != nil {
		t.Fatalf("StartListening failed: %v", err)
	}
	state, err := f.svc.StopListening(context.Background(), f.userId, started.SessionId)
	if err != nil {
		t.Fatalf("StopListening failed: %v", err)
	}

	if f.provider.calls != callsAfterStart {
		t.Error("stop without pending transcript should not reach the gateway")
	}
	if state.IsListening {
		t.Error("IsListening should be cleared")
	}
}
