package mapper

import (
	"time"

	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/model"
	"career-discovery-be/pkg/counselor"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// Session Mappers

func (m *ConversationMapper) SessionToEntity(s *model.ConversationSession) *entity.ConversationSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ConversationSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Phase:     counselor.Phase(s.Phase),
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ConversationMapper) SessionToModel(s *entity.ConversationSession) *model.ConversationSession {
	if s == nil {
		return nil
	}

	out := &model.ConversationSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Phase:     string(s.Phase),
		CreatedAt: s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		out.UpdatedAt = *s.UpdatedAt
	}
	return out
}

// Message Mappers

func (m *ConversationMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &entity.ConversationMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &model.ConversationMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(msgs []*model.ConversationMessage) []*entity.ConversationMessage {
	out := make([]*entity.ConversationMessage, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, m.MessageToEntity(msg))
	}
	return out
}

// Prompt history Mappers

func (m *ConversationMapper) PromptToEntity(msg *model.PromptMessage) *entity.PromptMessage {
	if msg == nil {
		return nil
	}
	return &entity.PromptMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) PromptToModel(msg *entity.PromptMessage) *model.PromptMessage {
	if msg == nil {
		return nil
	}
	return &model.PromptMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ConversationMapper) PromptsToEntities(msgs []*model.PromptMessage) []*entity.PromptMessage {
	out := make([]*entity.PromptMessage, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, m.PromptToEntity(msg))
	}
	return out
}

// Note Mappers

func (m *ConversationMapper) NoteToEntity(n *model.StudentNote) *entity.StudentNote {
	if n == nil {
		return nil
	}
	return &entity.StudentNote{
		Id:        n.Id,
		SessionId: n.SessionId,
		Category:  n.Category,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func (m *ConversationMapper) NoteToModel(n *entity.StudentNote) *model.StudentNote {
	if n == nil {
		return nil
	}
	return &model.StudentNote{
		Id:        n.Id,
		SessionId: n.SessionId,
		Category:  n.Category,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	}
}

func (m *ConversationMapper) NotesToEntities(notes []*model.StudentNote) []*entity.StudentNote {
	out := make([]*entity.StudentNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, m.NoteToEntity(n))
	}
	return out
}
