package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/mapper"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/contract"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/scope"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
)

type BriefingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BriefingMapper
}

func NewBriefingRepository(db *gorm.DB) contract.BriefingRepository {
	return &BriefingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBriefingMapper(),
	}
}

func (r *BriefingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BriefingRepositoryImpl) Create(ctx context.Context, briefing *entity.Briefing) error {
	m := r.mapper.ToModel(briefing)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*briefing = *r.mapper.ToEntity(m)
	return nil
}

func (r *BriefingRepositoryImpl) Update(ctx context.Context, briefing *entity.Briefing) error {
	m := r.mapper.ToModel(briefing)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*briefing = *r.mapper.ToEntity(m)
	return nil
}

func (r *BriefingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Briefing{}, id).Error
}

func (r *BriefingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Briefing, error) {
	var m model.Briefing
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindAll returns newest first unless a specification overrides the ordering.
func (r *BriefingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Briefing, error) {
	var models []*model.Briefing
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Briefing, len(models))
	for i, m := range models {
		out[i] = r.mapper.ToEntity(m)
	}
	return out, nil
}

func (r *BriefingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Briefing{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
