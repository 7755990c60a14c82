package unitofwork

import (
	"context"

	"career-discovery-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationSessionRepository() contract.ConversationSessionRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
	PromptMessageRepository() contract.PromptMessageRepository
	StudentNoteRepository() contract.StudentNoteRepository
	CareerReportRepository() contract.CareerReportRepository
}
