package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CatalogTemplate is one catalog entry keyed by the classification triple.
// Exactly one row is canonical per (disciplina, area, tipologia).
type CatalogTemplate struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Disciplina string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_catalog_key"`
	Area       string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_catalog_key"`
	Tipologia  string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_catalog_key"`
	Documento  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (CatalogTemplate) TableName() string {
	return "briefing_templates"
}
