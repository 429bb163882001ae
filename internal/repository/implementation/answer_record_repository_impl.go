package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/mapper"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/contract"
)

type AnswerRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnswerRecordMapper
}

func NewAnswerRecordRepository(db *gorm.DB) contract.AnswerRecordRepository {
	return &AnswerRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnswerRecordMapper(),
	}
}

func (r *AnswerRecordRepositoryImpl) Upsert(ctx context.Context, briefingID uuid.UUID, store entity.AnswerStore) error {
	m, err := r.mapper.ToModel(briefingID, store)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "briefing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"respostas", "updated_at"}),
	}).Create(m).Error
}

func (r *AnswerRecordRepositoryImpl) Find(ctx context.Context, briefingID uuid.UUID) (entity.AnswerStore, error) {
	var m model.AnswerRecord
	err := r.db.WithContext(ctx).Where("briefing_id = ?", briefingID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToStore(&m)
}

func (r *AnswerRecordRepositoryImpl) Delete(ctx context.Context, briefingID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("briefing_id = ?", briefingID).Delete(&model.AnswerRecord{}).Error
}
