package implementation

import (
	"context"

	"career-discovery-be/internal/entity"
	"career-discovery-be/internal/mapper"
	"career-discovery-be/internal/model"
	"career-discovery-be/internal/repository/contract"
	"career-discovery-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromptMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewPromptMessageRepository(db *gorm.DB) contract.PromptMessageRepository {
	return &PromptMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *PromptMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PromptMessageRepositoryImpl) Create(ctx context.Context, message *entity.PromptMessage) error {
	m := r.mapper.PromptToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.PromptToEntity(m)
	return nil
}

func (r *PromptMessageRepositoryImpl) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.PromptMessage{}).Error
}

func (r *PromptMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptMessage, error) {
	var models []*model.PromptMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.PromptsToEntities(models), nil
}
