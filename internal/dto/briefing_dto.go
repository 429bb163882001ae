package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

type CreateBriefingRequest struct {
	Nome       string    `json:"nome" validate:"required"`
	ClienteId  uuid.UUID `json:"cliente_id" validate:"required"`
	ProjetoId  uuid.UUID `json:"projeto_id" validate:"required"`
	Disciplina string    `json:"disciplina"`
	Area       string    `json:"area"`
	Tipologia  string    `json:"tipologia"`
}

type CreateBriefingResponse struct {
	Id         uuid.UUID `json:"id"`
	Disciplina string    `json:"disciplina"`
	Area       string    `json:"area"`
	Tipologia  string    `json:"tipologia"`
	Status     string    `json:"status"`
}

type ListBriefingsRequest struct {
	ClienteId string `query:"cliente_id"`
	ProjetoId string `query:"projeto_id"`
	Status    string `query:"status"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}

type BriefingSummary struct {
	Id         uuid.UUID  `json:"id"`
	ClienteId  uuid.UUID  `json:"cliente_id"`
	ProjetoId  uuid.UUID  `json:"projeto_id"`
	Nome       string     `json:"nome"`
	Disciplina string     `json:"disciplina"`
	Area       string     `json:"area"`
	Tipologia  string     `json:"tipologia"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"criado_em"`
	UpdatedAt  *time.Time `json:"atualizado_em,omitempty"`
}

type ListBriefingsResponse struct {
	Briefings []BriefingSummary `json:"briefings"`
	Total     int64             `json:"total"`
	Page      int               `json:"pagina"`
	Limit     int               `json:"limite"`
}

type ShowBriefingResponse struct {
	Id         uuid.UUID       `json:"id"`
	ClienteId  uuid.UUID       `json:"cliente_id"`
	ProjetoId  uuid.UUID       `json:"projeto_id"`
	Nome       string          `json:"nome"`
	Disciplina string          `json:"disciplina"`
	Area       string          `json:"area"`
	Tipologia  string          `json:"tipologia"`
	Status     string          `json:"status"`
	Progresso  int             `json:"progresso"`
	Template   entity.Template `json:"template"`
	CreatedAt  time.Time       `json:"criado_em"`
	UpdatedAt  *time.Time      `json:"atualizado_em,omitempty"`
}

type SubmitAnswerRequest struct {
	Id         uuid.UUID
	PerguntaId string             `json:"pergunta_id" validate:"required"`
	Valor      entity.AnswerValue `json:"valor"`
}

type SubmitAnswerResponse struct {
	Progresso       int      `json:"progresso"`
	SecoesVisiveis  []string `json:"secoes_visiveis"`
	SecoesCompletas []string `json:"secoes_completas"`
}

type ProgressResponse struct {
	BriefingId      uuid.UUID `json:"briefing_id"`
	Progresso       int       `json:"progresso"`
	SecoesVisiveis  []string  `json:"secoes_visiveis"`
	SecoesCompletas []string  `json:"secoes_completas"`
	Status          string    `json:"status"`
}

type ConcludeBriefingResponse struct {
	Id        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Progresso int       `json:"progresso"`
}
