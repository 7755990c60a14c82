package service

import (
	"context"
	"sort"

	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/repository/contract"
	"career-discovery-be/internal/repository/specification"
	"career-discovery-be/internal/repository/unitofwork"
	"career-discovery-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeStore backs all fake repositories with plain slices. Specifications
// are interpreted by type instead of being applied to a gorm query.
type fakeStore struct {
	sessions []*entity.ConversationSession
	messages []*entity.ConversationMessage
	prompts  []*entity.PromptMessage
	notes    []*entity.StudentNote
	reports  []*entity.CareerReport
}

type sessionFilter struct {
	id       *uuid.UUID
	userId   *uuid.UUID
	session  *uuid.UUID
	shareId  *uuid.UUID
	archived *bool
}

func parseSpecs(specs []specification.Specification) sessionFilter {
	var f sessionFilter
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			id := v.ID
			f.id = &id
		case specification.UserOwnedBy:
			uid := v.UserID
			f.userId = &uid
		case specification.BySessionID:
			sid := v.SessionID
			f.session = &sid
		case specification.ByShareID:
			shid := v.ShareID
			f.shareId = &shid
		case specification.ByArchived:
			archived := v.Archived
			f.archived = &archived
		}
	}
	return f
}

// --- session repository ---

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ConversationSession) error {
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ConversationSession) error {
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			copied := *session
			r.store.sessions[i] = &copied
		}
	}
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.sessions[:0]
	for _, s := range r.store.sessions {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.store.sessions = kept
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConversationSession, error) {
	f := parseSpecs(specs)
	for _, s := range r.store.sessions {
		if f.id != nil && s.Id != *f.id {
			continue
		}
		if f.userId != nil && s.UserId != *f.userId {
			continue
		}
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationSession, error) {
	var out []*entity.ConversationSession
	f := parseSpecs(specs)
	for _, s := range r.store.sessions {
		if f.userId != nil && s.UserId != *f.userId {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- message repositories ---

type fakeMessageRepo struct{ store *fakeStore }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ConversationMessage) error {
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.SessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	var out []*entity.ConversationMessage
	f := parseSpecs(specs)
	for _, m := range r.store.messages {
		if f.session != nil && m.SessionId != *f.session {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakePromptRepo struct{ store *fakeStore }

func (r *fakePromptRepo) Create(ctx context.Context, message *entity.PromptMessage) error {
	copied := *message
	r.store.prompts = append(r.store.prompts, &copied)
	return nil
}

func (r *fakePromptRepo) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.store.prompts[:0]
	for _, p := range r.store.prompts {
		if p.SessionId != sessionId {
			kept = append(kept, p)
		}
	}
	r.store.prompts = kept
	return nil
}

func (r *fakePromptRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptMessage, error) {
	var out []*entity.PromptMessage
	f := parseSpecs(specs)
	for _, p := range r.store.prompts {
		if f.session != nil && p.SessionId != *f.session {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- note repository ---

type fakeNoteRepo struct{ store *fakeStore }

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.StudentNote) error {
	copied := *note
	r.store.notes = append(r.store.notes, &copied)
	return nil
}

func (r *fakeNoteRepo) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.store.notes[:0]
	for _, n := range r.store.notes {
		if n.SessionId != sessionId {
			kept = append(kept, n)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudentNote, error) {
	var out []*entity.StudentNote
	f := parseSpecs(specs)
	for _, n := range r.store.notes {
		if f.session != nil && n.SessionId != *f.session {
			continue
		}
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

// --- report repository ---

type fakeReportRepo struct{ store *fakeStore }

func (r *fakeReportRepo) Create(ctx context.Context, report *entity.CareerReport) error {
	copied := *report
	r.store.reports = append(r.store.reports, &copied)
	return nil
}

func (r *fakeReportRepo) Update(ctx context.Context, report *entity.CareerReport) error {
	for i, existing := range r.store.reports {
		if existing.Id == report.Id {
			copied := *report
			r.store.reports[i] = &copied
		}
	}
	return nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.reports[:0]
	for _, rep := range r.store.reports {
		if rep.Id != id {
			kept = append(kept, rep)
		}
	}
	r.store.reports = kept
	return nil
}

func (r *fakeReportRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerReport, error) {
	f := parseSpecs(specs)
	for _, rep := range r.store.reports {
		if f.session != nil && rep.SessionId != *f.session {
			continue
		}
		if f.shareId != nil && rep.ShareId != *f.shareId {
			continue
		}
		if f.archived != nil && rep.Archived != *f.archived {
			continue
		}
		copied := *rep
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeReportRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	f := parseSpecs(specs)
	for _, rep := range r.store.reports {
		if f.session != nil && rep.SessionId != *f.session {
			continue
		}
		if f.archived != nil && rep.Archived != *f.archived {
			continue
		}
		count++
	}
	return count, nil
}

// --- unit of work ---

type fakeUnitOfWork struct{ store *fakeStore }

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) ConversationSessionRepository() contract.ConversationSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUnitOfWork) PromptMessageRepository() contract.PromptMessageRepository {
	return &fakePromptRepo{store: u.store}
}

func (u *fakeUnitOfWork) StudentNoteRepository() contract.StudentNoteRepository {
	return &fakeNoteRepo{store: u.store}
}

func (u *fakeUnitOfWork) CareerReportRepository() contract.CareerReportRepository {
	return &fakeReportRepo{store: u.store}
}

type fakeRepositoryFactory struct{ store *fakeStore }

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// --- llm provider ---

// scriptedProvider returns queued replies in order, repeating the last one
// once the script runs out.
type scriptedProvider struct {
	replies  []string
	err      error
	calls    int
	lastSent []llm.Message

	// onChat runs before each reply, letting a test interleave work with an
	// in-flight request.
	onChat func()
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.lastSent = history
	if p.onChat != nil {
		p.onChat()
	}
	if p.err != nil {
		return "", p.err
	}
	idx := p.calls - 1
	if idx >= len(p.replies) {
		idx = len(p.replies) - 1
	}
	return p.replies[idx], nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// --- publisher ---

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- mailer ---

type recordingMailer struct {
	to       string
	name     string
	shareURL string
	sent     int
	err      error
}

func (m *recordingMailer) SendShareLink(toEmail, studentName, shareURL string) error {
	if m.err != nil {
		return m.err
	}
	m.to = toEmail
	m.name = studentName
	m.shareURL = shareURL
	m.sent++
	return nil
}
