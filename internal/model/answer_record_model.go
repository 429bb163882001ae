package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnswerRecord is the durable copy of a briefing's full answer store. One
// row per briefing; the JSON document is replaced wholesale on each commit.
type AnswerRecord struct {
	BriefingId uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Respostas  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (AnswerRecord) TableName() string {
	return "briefing_respostas"
}
