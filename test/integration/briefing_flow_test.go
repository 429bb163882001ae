package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/database"
)

func TestBriefingPersistenceRoundTrip(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.BriefingRepository())
	assert.NotNil(t, uow.AnswerRecordRepository())
	assert.NotNil(t, uow.OverlayRecordRepository())
	assert.NotNil(t, uow.CatalogTemplateRepository())

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	b := &entity.Briefing{
		Id:         uuid.New(),
		ClienteId:  uuid.New(),
		ProjetoId:  uuid.New(),
		Nome:       "Briefing de integração",
		Disciplina: "arquitetura",
		Area:       "residencial",
		Tipologia:  "unifamiliar",
		Status:     entity.BriefingRascunho,
		CreatedAt:  time.Now(),
	}

	t.Run("Briefing CRUD", func(t *testing.T) {
		require.NoError(t, uow.BriefingRepository().Create(ctx, b))

		found, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: b.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, b.Nome, found.Nome)
		assert.Equal(t, entity.BriefingRascunho, found.Status)

		found.Status = entity.BriefingEmAndamento
		require.NoError(t, uow.BriefingRepository().Update(ctx, found))
	})

	t.Run("Answer record upsert replaces the document", func(t *testing.T) {
		store := entity.AnswerStore{
			"pergunta-1": entity.StringAnswer("300m2"),
			"pergunta-2": entity.ListAnswer([]string{"Piscina", "Jardim"}),
		}
		require.NoError(t, uow.AnswerRecordRepository().Upsert(ctx, b.Id, store))

		store["pergunta-3"] = entity.NumberAnswer(4)
		require.NoError(t, uow.AnswerRecordRepository().Upsert(ctx, b.Id, store))

		loaded, err := uow.AnswerRecordRepository().Find(ctx, b.Id)
		require.NoError(t, err)
		assert.Len(t, loaded, 3)
	})

	t.Run("Overlay record round trip", func(t *testing.T) {
		o := &entity.Overlay{
			BriefingId: b.Id,
			ClienteId:  b.ClienteId,
			ProjetoId:  b.ProjetoId,
			Template: entity.Template{
				ID:   b.Id.String(),
				Name: "Estrutura personalizada",
				Sections: []entity.Section{
					{ID: "S1", Name: "Única", Questions: []entity.Question{
						{ID: "Q1", Prompt: "Pergunta", Kind: entity.KindText},
					}},
				},
				Source: entity.SourcePersonalizado,
			},
			Version:   1,
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.OverlayRecordRepository().Upsert(ctx, o))

		loaded, err := uow.OverlayRecordRepository().Find(ctx, b.Id)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, int64(1), loaded.Version)
		assert.Len(t, loaded.Template.Sections, 1)

		require.NoError(t, uow.OverlayRecordRepository().Delete(ctx, b.Id))
		gone, err := uow.OverlayRecordRepository().Find(ctx, b.Id)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("Catalog template upsert and lookup", func(t *testing.T) {
		key := catalog.Key{Disciplina: "arquitetura", Area: "integracao", Tipologia: "teste"}
		tpl := &entity.Template{
			ID:   "tpl-integracao",
			Name: "Template de integração",
			Sections: []entity.Section{
				{ID: "S1", Name: "Geral", Questions: []entity.Question{
					{ID: "Q1", Prompt: "Pergunta", Kind: entity.KindText},
				}},
			},
		}
		require.NoError(t, uow.CatalogTemplateRepository().Upsert(ctx, key, tpl))

		loaded, err := uow.CatalogTemplateRepository().Find(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Template de integração", loaded.Name)

		keys, err := uow.CatalogTemplateRepository().Keys(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, keys)
	})

	// Cleanup
	t.Cleanup(func() {
		_ = uow.AnswerRecordRepository().Delete(ctx, b.Id)
		_ = uow.BriefingRepository().Delete(ctx, b.Id)
	})
}
