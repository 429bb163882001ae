package dto

import (
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

type ResolveTemplateRequest struct {
	Disciplina string `query:"disciplina"`
	Area       string `query:"area"`
	Tipologia  string `query:"tipologia"`
}

type ResolveTemplateResponse struct {
	Template entity.Template `json:"template"`
	// Fallback is true when the catalog had no exact entry for the requested
	// triple and a default structure was served instead.
	Fallback bool `json:"fallback"`
}
