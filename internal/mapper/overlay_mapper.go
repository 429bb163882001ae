package mapper

import (
	"encoding/json"
	"time"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
)

type OverlayMapper struct{}

func NewOverlayMapper() *OverlayMapper {
	return &OverlayMapper{}
}

func (m *OverlayMapper) ToEntity(o *model.Overlay) (*entity.Overlay, error) {
	if o == nil {
		return nil, nil
	}

	var tpl entity.Template
	if err := json.Unmarshal(o.Template, &tpl); err != nil {
		return nil, err
	}

	var updatedAt *time.Time
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		updatedAt = &t
	}

	return &entity.Overlay{
		BriefingId: o.BriefingId,
		ClienteId:  o.ClienteId,
		ProjetoId:  o.ProjetoId,
		Template:   tpl,
		Version:    o.Version,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func (m *OverlayMapper) ToModel(o *entity.Overlay) (*model.Overlay, error) {
	if o == nil {
		return nil, nil
	}

	doc, err := json.Marshal(o.Template)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if o.UpdatedAt != nil {
		updatedAt = *o.UpdatedAt
	}

	return &model.Overlay{
		BriefingId: o.BriefingId,
		ClienteId:  o.ClienteId,
		ProjetoId:  o.ProjetoId,
		Template:   doc,
		Version:    o.Version,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  updatedAt,
	}, nil
}
