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

type OverlayRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OverlayMapper
}

func NewOverlayRecordRepository(db *gorm.DB) contract.OverlayRecordRepository {
	return &OverlayRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewOverlayMapper(),
	}
}

func (r *OverlayRecordRepositoryImpl) Upsert(ctx context.Context, overlay *entity.Overlay) error {
	m, err := r.mapper.ToModel(overlay)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "briefing_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"template", "version", "updated_at"}),
	}).Create(m).Error
}

func (r *OverlayRecordRepositoryImpl) Find(ctx context.Context, briefingID uuid.UUID) (*entity.Overlay, error) {
	var m model.Overlay
	err := r.db.WithContext(ctx).Where("briefing_id = ?", briefingID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *OverlayRecordRepositoryImpl) Delete(ctx context.Context, briefingID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("briefing_id = ?", briefingID).Delete(&model.Overlay{}).Error
}
