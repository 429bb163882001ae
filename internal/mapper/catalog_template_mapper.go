package mapper

import (
	"encoding/json"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
)

type CatalogTemplateMapper struct{}

func NewCatalogTemplateMapper() *CatalogTemplateMapper {
	return &CatalogTemplateMapper{}
}

func (m *CatalogTemplateMapper) ToEntity(r *model.CatalogTemplate) (*entity.Template, error) {
	if r == nil {
		return nil, nil
	}
	var tpl entity.Template
	if err := json.Unmarshal(r.Documento, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (m *CatalogTemplateMapper) ToModel(key catalog.Key, tpl *entity.Template) (*model.CatalogTemplate, error) {
	if tpl == nil {
		return nil, nil
	}
	doc, err := json.Marshal(tpl)
	if err != nil {
		return nil, err
	}
	return &model.CatalogTemplate{
		Disciplina: key.Disciplina,
		Area:       key.Area,
		Tipologia:  key.Tipologia,
		Documento:  doc,
	}, nil
}
