package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByClienteId struct {
	ClienteId uuid.UUID
}

func (s ByClienteId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cliente_id = ?", s.ClienteId)
}

type ByProjetoId struct {
	ProjetoId uuid.UUID
}

func (s ByProjetoId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("projeto_id = ?", s.ProjetoId)
}

type ByBriefingId struct {
	BriefingId uuid.UUID
}

func (s ByBriefingId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("briefing_id = ?", s.BriefingId)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByCatalogKey filters catalog templates by the full classification triple.
type ByCatalogKey struct {
	Disciplina string
	Area       string
	Tipologia  string
}

func (s ByCatalogKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("disciplina = ? AND area = ? AND tipologia = ?", s.Disciplina, s.Area, s.Tipologia)
}
