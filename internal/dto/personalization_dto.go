package dto

import (
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// CommitOverlayRequest replaces the whole personalized structure for a
// briefing. Versao carries the version the editor started from so stale
// commits can be detected.
type CommitOverlayRequest struct {
	Id       uuid.UUID
	Template entity.Template `json:"template" validate:"required"`
	Versao   int64           `json:"versao"`
}

type CommitOverlayResponse struct {
	BriefingId uuid.UUID `json:"briefing_id"`
	Versao     int64     `json:"versao"`
	Origem     string    `json:"origem"`
}

// StructureOperation is one incremental edit applied server side to the
// current structure of a briefing. Operations are applied in order and the
// resulting structure is committed as a new overlay version.
type StructureOperation struct {
	Tipo          string           `json:"tipo" validate:"required,oneof=adicionar_secao remover_secao mover_secao_cima mover_secao_baixo editar_secao adicionar_pergunta remover_pergunta mover_pergunta_cima mover_pergunta_baixo editar_pergunta"`
	SecaoIndex    int              `json:"secao_index"`
	PerguntaIndex int              `json:"pergunta_index"`
	Secao         *entity.Section  `json:"secao,omitempty"`
	Pergunta      *entity.Question `json:"pergunta,omitempty"`
	Nome          *string          `json:"nome,omitempty"`
	Descricao     *string          `json:"descricao,omitempty"`
	Enunciado     *string          `json:"enunciado,omitempty"`
	TipoPergunta  *string          `json:"tipo_pergunta,omitempty"`
	Obrigatoria   *bool            `json:"obrigatoria,omitempty"`
	Opcoes        *[]string        `json:"opcoes,omitempty"`
}

type ApplyOperationsRequest struct {
	Id        uuid.UUID
	Operacoes []StructureOperation `json:"operacoes" validate:"required,min=1,dive"`
}

type ApplyOperationsResponse struct {
	BriefingId uuid.UUID       `json:"briefing_id"`
	Versao     int64           `json:"versao"`
	Template   entity.Template `json:"template"`
}

type ClearOverlayResponse struct {
	BriefingId uuid.UUID `json:"briefing_id"`
	Origem     string    `json:"origem"`
}
