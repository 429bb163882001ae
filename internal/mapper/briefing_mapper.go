package mapper

import (
	"time"

	"gorm.io/gorm"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/model"
)

type BriefingMapper struct{}

func NewBriefingMapper() *BriefingMapper {
	return &BriefingMapper{}
}

func (m *BriefingMapper) ToEntity(b *model.Briefing) *entity.Briefing {
	if b == nil {
		return nil
	}

	var deletedAt *time.Time
	if b.DeletedAt.Valid {
		t := b.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	return &entity.Briefing{
		Id:         b.Id,
		ClienteId:  b.ClienteId,
		ProjetoId:  b.ProjetoId,
		Nome:       b.Nome,
		Disciplina: b.Disciplina,
		Area:       b.Area,
		Tipologia:  b.Tipologia,
		Status:     entity.BriefingStatus(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *BriefingMapper) ToModel(b *entity.Briefing) *model.Briefing {
	if b == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if b.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *b.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	return &model.Briefing{
		Id:         b.Id,
		ClienteId:  b.ClienteId,
		ProjetoId:  b.ProjetoId,
		Nome:       b.Nome,
		Disciplina: b.Disciplina,
		Area:       b.Area,
		Tipologia:  b.Tipologia,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}
