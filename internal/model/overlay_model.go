package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Overlay is the durable record of a personalization overlay: the full
// replacement template as a JSON document plus provenance.
type Overlay struct {
	BriefingId uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ClienteId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjetoId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Template   datatypes.JSON `gorm:"type:jsonb;not null"`
	Version    int64          `gorm:"not null;default:0"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Overlay) TableName() string {
	return "briefing_estruturas_personalizadas"
}
