package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"career-discovery-be/internal/apperr"
	"career-discovery-be/internal/constant"
	"career-discovery-be/internal/dto"
	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/pkg/logger"
	"career-discovery-be/internal/repository/memory"
	"career-discovery-be/internal/repository/specification"
	"career-discovery-be/internal/repository/unitofwork"
	"career-discovery-be/pkg/counselor"
	"career-discovery-be/pkg/events"
	"career-discovery-be/pkg/llm"
	"career-discovery-be/pkg/store"

	pktNats "career-discovery-be/pkg/nats"

	"github.com/google/uuid"
)

// IConversationService owns the conversation lifecycle: phase, message log,
// extracted notes, the report, and the volatile voice flags.
type IConversationService interface {
	Start(ctx context.Context, userId uuid.UUID) (*dto.ConversationStateResponse, error)
	GetState(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.ConversationStateResponse, error)
	SpeechFinished(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error)
	StartListening(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error)
	StopListening(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error)
	UpdateTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.TranscriptRequest) (*dto.ConversationStateResponse, error)
	Reset(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error)
}

type conversationService struct {
	uowFactory       unitofwork.RepositoryFactory
	llmProvider      llm.Provider
	liveRepo         *memory.LiveStateRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
	replyTimeout     time.Duration
}

func NewConversationService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.Provider,
	liveRepo *memory.LiveStateRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	replyTimeout time.Duration,
) IConversationService {
	if replyTimeout <= 0 {
		replyTimeout = 60 * time.Second
	}
	return &conversationService{
		uowFactory:       uowFactory,
		llmProvider:      llmProvider,
		liveRepo:         liveRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		replyTimeout:     replyTimeout,
	}
}

// Start creates a fresh session, seeds the prompt history with the persona
// prompt and the synthetic opening turn (neither is displayed), and runs the
// first gateway round-trip to get the greeting.
func (cs *conversationService) Start(ctx context.Context, userId uuid.UUID) (*dto.ConversationStateResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	session := entity.ConversationSession{
		Id:        uuid.New(),
		UserId:    userId,
		Phase:     counselor.PhaseWelcome,
		CreatedAt: now,
	}

	systemSeed := entity.PromptMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleSystem,
		Content:   counselor.SystemPrompt,
		CreatedAt: now,
	}
	startTurn := entity.PromptMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleUser,
		Content:   counselor.StartPrompt,
		CreatedAt: now.Add(1 * time.Second),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	if err := uow.PromptMessageRepository().Create(ctx, &systemSeed); err != nil {
		return nil, err
	}
	if err := uow.PromptMessageRepository().Create(ctx, &startTurn); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	live := &store.LiveState{
		SessionID:    session.Id.String(),
		UserID:       userId.String(),
		IsProcessing: true,
		Generation:   1,
	}
	cs.liveRepo.Save(live)

	return cs.runTurn(ctx, &session, live)
}

// SendMessage is one full turn: optimistic user append, gateway round-trip
// with the whole accumulated history, parse, merge. Blank input is a no-op.
func (cs *conversationService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.ConversationStateResponse, error) {
	text := strings.TrimSpace(req.Message)

	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return cs.buildState(ctx, session, cs.liveState(session), "")
	}
	if session.Phase == counselor.PhaseComplete {
		return nil, apperr.Conflict("conversation already complete; reset to start over")
	}

	// Optimistic append: committed before the gateway call so a failed
	// round-trip never loses the student's words from the transcript.
	now := time.Now()
	userMsg := entity.ConversationMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: now,
	}
	userPrompt := entity.PromptMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleUser,
		Content:   req.Message,
		CreatedAt: now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.ConversationMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}
	if err := uow.PromptMessageRepository().Create(ctx, &userPrompt); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	live.IsProcessing = true
	live.Transcript = ""
	cs.liveRepo.Save(live)

	return cs.runTurn(ctx, session, live)
}

// runTurn sends the accumulated prompt history to the gateway, parses the
// reply, and folds the result into persisted and live state. The generation
// captured before the round-trip guards against replies landing after reset.
func (cs *conversationService) runTurn(ctx context.Context, session *entity.ConversationSession, live *store.LiveState) (*dto.ConversationStateResponse, error) {
	generation := live.Generation

	history, err := cs.loadPromptHistory(ctx, session.Id)
	if err != nil {
		cs.clearProcessing(live)
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, cs.replyTimeout)
	defer cancel()

	raw, err := cs.llmProvider.Chat(callCtx, history)
	if err != nil {
		cs.log.Error("conversation", "chat gateway call failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		cs.clearProcessing(live)
		return nil, err
	}

	// A reset while the request was in flight bumped the generation; this
	// reply belongs to a conversation that no longer exists.
	if current, ok := cs.liveRepo.Get(live.SessionID); ok && current.Generation != generation {
		cs.log.Warn("conversation", "discarding stale gateway reply", map[string]interface{}{
			"session_id": session.Id.String(),
		})
		// The reset rewrote the session row; the copy loaded before the
		// gateway call still carries the old phase.
		uow := cs.uowFactory.NewUnitOfWork(ctx)
		if refreshed, err := uow.ConversationSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id}); err == nil && refreshed != nil {
			session = refreshed
		}
		return cs.buildState(ctx, session, current, "")
	}

	parsed := counselor.Parse(raw, session.Phase)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		cs.clearProcessing(live)
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	assistantPrompt := entity.PromptMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleAssistant,
		Content:   raw,
		CreatedAt: now,
	}
	if err := uow.PromptMessageRepository().Create(ctx, &assistantPrompt); err != nil {
		cs.clearProcessing(live)
		return nil, err
	}

	assistantMsg := entity.ConversationMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleAssistant,
		Content:   parsed.Text,
		CreatedAt: now,
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &assistantMsg); err != nil {
		cs.clearProcessing(live)
		return nil, err
	}

	for _, note := range parsed.Notes {
		noteEntity := entity.StudentNote{
			Id:        uuid.MustParse(note.ID),
			SessionId: session.Id,
			Category:  note.Category,
			Title:     note.Title,
			Content:   note.Content,
			CreatedAt: note.Timestamp,
		}
		if err := uow.StudentNoteRepository().Create(ctx, &noteEntity); err != nil {
			cs.clearProcessing(live)
			return nil, err
		}
	}

	session.Phase = parsed.Phase
	if err := uow.ConversationSessionRepository().Update(ctx, session); err != nil {
		cs.clearProcessing(live)
		return nil, err
	}

	reportStored := false
	if parsed.Report != nil {
		// A report is written once and never replaced.
		existing, err := uow.CareerReportRepository().FindOne(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.ByArchived{Archived: false},
		)
		if err != nil {
			cs.clearProcessing(live)
			return nil, err
		}
		if existing == nil {
			report := entity.CareerReport{
				Id:               uuid.New(),
				SessionId:        session.Id,
				ShareId:          uuid.New(),
				Snapshot:         parsed.Report.StudentSnapshot,
				RecommendedPaths: parsed.Report.RecommendedPaths,
				PersonalityBadge: parsed.Report.PersonalityBadge,
				GeneratedAt:      parsed.Report.GeneratedAt,
			}
			if err := uow.CareerReportRepository().Create(ctx, &report); err != nil {
				cs.clearProcessing(live)
				return nil, err
			}
			reportStored = true
		}
	}

	if err := uow.Commit(); err != nil {
		cs.clearProcessing(live)
		return nil, err
	}

	live.IsProcessing = false
	live.IsSpeaking = true
	if parsed.Report != nil {
		live.PendingComplete = true
	}
	cs.liveRepo.Save(live)

	if reportStored && cs.publisherService != nil {
		msgPayload := dto.PublishReportGeneratedMessage{SessionId: session.Id}
		msgJson, err := json.Marshal(msgPayload)
		if err == nil {
			err = cs.publisherService.Publish(ctx, msgJson)
		}
		if err != nil {
			cs.log.Warn("conversation", "failed to publish report message", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	return cs.buildState(ctx, session, live, parsed.Text)
}

// SpeechFinished is the client's synthesis-completed callback. Once the
// speech accompanying a report-bearing reply ends, the session enters the
// terminal phase; only a reset leaves it.
func (cs *conversationService) SpeechFinished(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	live.IsSpeaking = false

	if live.PendingComplete && session.Phase != counselor.PhaseComplete {
		live.PendingComplete = false
		session.Phase = counselor.PhaseComplete

		uow := cs.uowFactory.NewUnitOfWork(ctx)
		if err := uow.ConversationSessionRepository().Update(ctx, session); err != nil {
			return nil, err
		}

		if cs.eventPublisher != nil {
			evt := events.ConversationCompleted{
				SessionID:   session.Id.String(),
				UserID:      session.UserId.String(),
				CompletedAt: time.Now(),
			}
			if report, err := uow.CareerReportRepository().FindOne(ctx, specification.BySessionID{SessionID: session.Id}, specification.ByArchived{Archived: false}); err == nil && report != nil {
				evt.StudentName = report.Snapshot.Name
				evt.PathCount = len(report.RecommendedPaths)
			}
			if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
				cs.log.Warn("conversation", "failed to publish completion event", map[string]interface{}{
					"session_id": session.Id.String(),
					"error":      err.Error(),
				})
			}
		}
	}

	cs.liveRepo.Save(live)
	return cs.buildState(ctx, session, live, "")
}

func (cs *conversationService) StartListening(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	live.IsListening = true
	live.Transcript = ""
	cs.liveRepo.Save(live)

	return cs.buildState(ctx, session, live, "")
}

// StopListening flushes any pending interim transcript through SendMessage
// so an utterance already begun is never lost.
func (cs *conversationService) StopListening(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	pending := strings.TrimSpace(live.Transcript)
	live.IsListening = false
	live.Transcript = ""
	cs.liveRepo.Save(live)

	if pending != "" {
		return cs.SendMessage(ctx, userId, sessionId, &dto.SendMessageRequest{Message: pending})
	}
	return cs.buildState(ctx, session, live, "")
}

// UpdateTranscript receives speech-to-text updates from the client. Interim
// text is shown as live state; a final transcript becomes a message.
func (cs *conversationService) UpdateTranscript(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.TranscriptRequest) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	if !req.IsFinal {
		live.Transcript = req.Text
		cs.liveRepo.Save(live)
		return cs.buildState(ctx, session, live, "")
	}

	live.IsListening = false
	live.Transcript = ""
	cs.liveRepo.Save(live)
	return cs.SendMessage(ctx, userId, sessionId, &dto.SendMessageRequest{Message: req.Text})
}

// Reset clears everything back to initial values and re-seeds the system
// prompt. The generation bump makes any in-flight gateway reply stale.
func (cs *conversationService) Reset(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return nil, err
	}
	if err := uow.PromptMessageRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return nil, err
	}
	if err := uow.StudentNoteRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return nil, err
	}
	report, err := uow.CareerReportRepository().FindOne(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.ByArchived{Archived: false},
	)
	if err != nil {
		return nil, err
	}
	if report != nil {
		if report.Shared {
			// A minted share link stays valid forever. The row is detached
			// from the conversation instead of destroyed.
			report.Archived = true
			if err := uow.CareerReportRepository().Update(ctx, report); err != nil {
				return nil, err
			}
		} else if err := uow.CareerReportRepository().Delete(ctx, report.Id); err != nil {
			return nil, err
		}
	}

	session.Phase = counselor.PhaseWelcome
	if err := uow.ConversationSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	systemSeed := entity.PromptMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      constant.MessageRoleSystem,
		Content:   counselor.SystemPrompt,
		CreatedAt: time.Now(),
	}
	if err := uow.PromptMessageRepository().Create(ctx, &systemSeed); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	live := cs.liveState(session)
	live.Generation++
	live.IsListening = false
	live.IsSpeaking = false
	live.IsProcessing = false
	live.Transcript = ""
	live.PendingComplete = false
	cs.liveRepo.Save(live)

	return cs.buildState(ctx, session, live, "")
}

func (cs *conversationService) GetState(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ConversationStateResponse, error) {
	session, err := cs.loadSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return cs.buildState(ctx, session, cs.liveState(session), "")
}

// --- helpers ---

func (cs *conversationService) loadSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*entity.ConversationSession, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ConversationSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperr.NotFound("conversation not found")
	}
	return session, nil
}

func (cs *conversationService) liveState(session *entity.ConversationSession) *store.LiveState {
	if live, ok := cs.liveRepo.Get(session.Id.String()); ok {
		return live
	}
	live := &store.LiveState{
		SessionID:  session.Id.String(),
		UserID:     session.UserId.String(),
		Generation: 1,
	}
	cs.liveRepo.Save(live)
	return live
}

func (cs *conversationService) clearProcessing(live *store.LiveState) {
	live.IsProcessing = false
	cs.liveRepo.Save(live)
}

func (cs *conversationService) loadPromptHistory(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	prompts, err := uow.PromptMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(prompts))
	for _, p := range prompts {
		history = append(history, llm.Message{Role: p.Role, Content: p.Content})
	}
	return history, nil
}

func (cs *conversationService) buildState(ctx context.Context, session *entity.ConversationSession, live *store.LiveState, speakText string) (*dto.ConversationStateResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	notes, err := uow.StudentNoteRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	report, err := uow.CareerReportRepository().FindOne(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.ByArchived{Archived: false},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConversationStateResponse{
		SessionId:    session.Id,
		Phase:        session.Phase,
		Messages:     make([]dto.MessageDTO, 0, len(messages)),
		Notes:        make([]dto.NoteDTO, 0, len(notes)),
		IsListening:  live.IsListening,
		IsSpeaking:   live.IsSpeaking,
		IsProcessing: live.IsProcessing,
		Transcript:   live.Transcript,
		SpeakText:    speakText,
	}

	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.MessageDTO{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, dto.NoteDTO{
			Id:        n.Id,
			Category:  n.Category,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		})
	}
	if report != nil {
		resp.Report = reportToDTO(report)
	}

	return resp, nil
}

func reportToDTO(report *entity.CareerReport) *dto.ReportDTO {
	out := &dto.ReportDTO{
		StudentSnapshot:  report.Snapshot,
		RecommendedPaths: report.RecommendedPaths,
		PersonalityBadge: report.PersonalityBadge,
		GeneratedAt:      report.GeneratedAt,
	}
	if report.Shared {
		shareId := report.ShareId
		out.ShareId = &shareId
	}
	return out
}
