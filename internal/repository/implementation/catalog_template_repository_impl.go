package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/mapper"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/contract"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
)

type CatalogTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogTemplateMapper
}

func NewCatalogTemplateRepository(db *gorm.DB) contract.CatalogTemplateRepository {
	return &CatalogTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogTemplateMapper(),
	}
}

func (r *CatalogTemplateRepositoryImpl) Upsert(ctx context.Context, key catalog.Key, tpl *entity.Template) error {
	m, err := r.mapper.ToModel(key, tpl)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "disciplina"}, {Name: "area"}, {Name: "tipologia"}},
		DoUpdates: clause.AssignmentColumns([]string{"documento", "updated_at"}),
	}).Create(m).Error
}

func (r *CatalogTemplateRepositoryImpl) Find(ctx context.Context, key catalog.Key) (*entity.Template, error) {
	var m model.CatalogTemplate
	query := specification.ByCatalogKey{
		Disciplina: key.Disciplina,
		Area:       key.Area,
		Tipologia:  key.Tipologia,
	}.Apply(r.db.WithContext(ctx))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *CatalogTemplateRepositoryImpl) Keys(ctx context.Context) ([]catalog.Key, error) {
	var models []*model.CatalogTemplate
	err := r.db.WithContext(ctx).
		Select("disciplina", "area", "tipologia").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	keys := make([]catalog.Key, len(models))
	for i, m := range models {
		keys[i] = catalog.Key{Disciplina: m.Disciplina, Area: m.Area, Tipologia: m.Tipologia}
	}
	return keys, nil
}
