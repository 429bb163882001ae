package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/overlay"
)

// ErrNoTemplate is the fatal configuration error: the classification triple
// resolved to nothing and no fallback entry exists either. Surfaced to the
// caller, never retried.
var ErrNoTemplate = errors.New("no briefing template resolvable")

// Resolver turns a briefing instance into the template its session renders.
// A valid personalization overlay always wins over the catalog.
type Resolver struct {
	overlays *overlay.Store
	catalog  catalog.Catalog
	log      logger.ILogger
}

func New(overlays *overlay.Store, cat catalog.Catalog, log logger.ILogger) *Resolver {
	return &Resolver{overlays: overlays, catalog: cat, log: log}
}

// Resolve returns the single template for the briefing. Overlay first, then
// the catalog through the decision table and its fixed fallback chain.
func (r *Resolver) Resolve(ctx context.Context, b *entity.Briefing) (*entity.Template, error) {
	if o, err := r.overlays.Get(ctx, b.ClienteId, b.ProjetoId, b.Id); err == nil && o != nil {
		tpl := o.Template.Clone()
		tpl.Source = entity.SourcePersonalizado
		r.stamp(&tpl, b)
		return &tpl, nil
	}

	key := catalog.Resolve(b.Disciplina, b.Area, b.Tipologia)
	for _, candidate := range catalog.FallbackChain(key) {
		tpl, err := r.catalog.Get(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup for %s: %w", candidate, err)
		}
		if tpl == nil {
			continue
		}
		if candidate != key {
			r.log.Info("Resolver", "Catalog miss, fallback used", map[string]interface{}{
				"briefing_id": b.Id.String(),
				"requested":   key.String(),
				"resolved":    candidate.String(),
			})
		}
		tpl.Source = entity.SourceCatalogo
		tpl.Tags = entity.TemplateTags{
			Disciplina: key.Disciplina,
			Area:       key.Area,
			Tipologia:  key.Tipologia,
		}
		r.stamp(tpl, b)
		return tpl, nil
	}

	return nil, fmt.Errorf("%w: %s/%s/%s", ErrNoTemplate, b.Disciplina, b.Area, b.Tipologia)
}

// stamp takes the resolved template's identity fields from the briefing
// instance's own metadata.
func (r *Resolver) stamp(tpl *entity.Template, b *entity.Briefing) {
	tpl.ID = b.Id.String()
	if b.Nome != "" {
		tpl.Name = b.Nome
	}
	tpl.CreatedAt = b.CreatedAt
	tpl.UpdatedAt = b.UpdatedAt
	tpl.TotalQuestions = tpl.CountQuestions()
}
