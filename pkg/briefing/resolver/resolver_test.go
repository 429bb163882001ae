package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/overlay"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
)

func newFixture(t *testing.T) (*Resolver, *overlay.Store, *entity.Briefing) {
	t.Helper()
	log := logger.NewNopLogger()
	overlays := overlay.NewStore(kvstore.NewMemoryStore(), kvstore.NewCacheStore(), log)
	r := New(overlays, catalog.NewStaticCatalog(), log)
	b := &entity.Briefing{
		Id:         uuid.New(),
		ClienteId:  uuid.New(),
		ProjetoId:  uuid.New(),
		Nome:       "Casa Alphaville",
		Disciplina: "arquitetura",
		Area:       "residencial",
		Tipologia:  "unifamiliar",
		CreatedAt:  time.Now(),
	}
	return r, overlays, b
}

func TestResolveCatalogEntry(t *testing.T) {
	r, _, b := newFixture(t)

	tpl, err := r.Resolve(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, entity.SourceCatalogo, tpl.Source)
	assert.Equal(t, b.Id.String(), tpl.ID)
	assert.Equal(t, "Casa Alphaville", tpl.Name)
	assert.Equal(t, "arquitetura", tpl.Tags.Disciplina)
	assert.Equal(t, tpl.CountQuestions(), tpl.TotalQuestions)
	assert.NotEmpty(t, tpl.Sections)
}

func TestResolveFallsBackWithinDiscipline(t *testing.T) {
	r, _, b := newFixture(t)
	b.Area = "industrial"
	b.Tipologia = "galpao"

	tpl, err := r.Resolve(context.Background(), b)
	require.NoError(t, err)

	// No industrial entry exists: the same-discipline default serves.
	assert.Equal(t, entity.SourceCatalogo, tpl.Source)
	assert.Equal(t, "industrial", tpl.Tags.Area, "tags keep the requested classification")
}

func TestResolveFatalWhenNothingResolves(t *testing.T) {
	log := logger.NewNopLogger()
	overlays := overlay.NewStore(kvstore.NewMemoryStore(), kvstore.NewCacheStore(), log)
	r := New(overlays, emptyCatalog{}, log)

	b := &entity.Briefing{Id: uuid.New(), Disciplina: "naval", Area: "offshore", Tipologia: "plataforma"}
	_, err := r.Resolve(context.Background(), b)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

// emptyCatalog simulates a broken catalog deployment: every lookup misses.
type emptyCatalog struct{}

func (emptyCatalog) Get(context.Context, catalog.Key) (*entity.Template, error) {
	return nil, nil
}

func TestOverlayPrecedence(t *testing.T) {
	r, overlays, b := newFixture(t)

	custom := entity.Overlay{
		BriefingId: b.Id,
		ClienteId:  b.ClienteId,
		ProjetoId:  b.ProjetoId,
		Version:    1,
		Template: entity.Template{
			Name: "Briefing Personalizado",
			Sections: []entity.Section{
				{ID: "custom-1", Name: "Seção Própria", Questions: []entity.Question{
					{ID: "C1", Prompt: "Pergunta própria", Kind: entity.KindText},
				}},
			},
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, overlays.Save(context.Background(), &custom))

	tpl, err := r.Resolve(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, entity.SourcePersonalizado, tpl.Source)
	require.Len(t, tpl.Sections, 1)
	assert.Equal(t, "custom-1", tpl.Sections[0].ID)
	assert.Equal(t, "C1", tpl.Sections[0].Questions[0].ID)

	// Clearing the overlay reverts resolution to the catalog entry.
	require.NoError(t, overlays.Delete(context.Background(), b.ClienteId, b.ProjetoId, b.Id))
	tpl, err = r.Resolve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceCatalogo, tpl.Source)
}

func TestMalformedOverlayFallsThrough(t *testing.T) {
	_, _, b := newFixture(t)

	// An overlay with zero sections is structurally invalid and must be
	// treated as absent.
	remote := kvstore.NewMemoryStore()
	log := logger.NewNopLogger()
	overlays := overlay.NewStore(remote, kvstore.NewCacheStore(), log)
	payload := []byte(`{"briefingId":"` + b.Id.String() + `","template":{"secoes":[]}}`)
	require.NoError(t, remote.Set(context.Background(),
		kvstore.OverlayKey(b.ClienteId, b.ProjetoId, b.Id), payload))

	r2 := New(overlays, catalog.NewStaticCatalog(), log)
	tpl, err := r2.Resolve(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, entity.SourceCatalogo, tpl.Source)
}
