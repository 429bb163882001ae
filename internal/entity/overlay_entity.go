package entity

import (
	"time"

	"github.com/google/uuid"
)

// Overlay is a saved, instance-specific structural replacement for the
// catalog template. While one exists, template resolution for the owning
// briefing returns the overlay verbatim until it is explicitly cleared.
type Overlay struct {
	BriefingId uuid.UUID `json:"briefingId"`
	ClienteId  uuid.UUID `json:"clienteId"`
	ProjetoId  uuid.UUID `json:"projetoId"`
	Template   Template  `json:"template"`
	// Version is an optimistic stamp. Concurrent editors are not reconciled
	// (last write wins) but a stale commit is detected and logged.
	Version   int64      `json:"versao"`
	CreatedAt time.Time  `json:"criadoEm"`
	UpdatedAt *time.Time `json:"atualizadoEm,omitempty"`
}

// Valid reports whether the overlay is structurally usable. An overlay with
// no sections is treated as absent by the resolver.
func (o *Overlay) Valid() bool {
	return o != nil && len(o.Template.Sections) > 0
}
