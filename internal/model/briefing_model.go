package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Briefing struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProjetoId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Nome       string         `gorm:"type:varchar(255);not null"`
	Disciplina string         `gorm:"type:varchar(100);not null"`
	Area       string         `gorm:"type:varchar(100);not null"`
	Tipologia  string         `gorm:"type:varchar(100);not null"`
	Status     string         `gorm:"type:varchar(30);not null;default:'rascunho'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Briefing) TableName() string {
	return "briefings"
}
