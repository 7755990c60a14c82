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

type StudentNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewStudentNoteRepository(db *gorm.DB) contract.StudentNoteRepository {
	return &StudentNoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *StudentNoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudentNoteRepositoryImpl) Create(ctx context.Context, note *entity.StudentNote) error {
	m := r.mapper.NoteToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.NoteToEntity(m)
	return nil
}

func (r *StudentNoteRepositoryImpl) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.StudentNote{}).Error
}

func (r *StudentNoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudentNote, error) {
	var models []*model.StudentNote
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NotesToEntities(models), nil
}
