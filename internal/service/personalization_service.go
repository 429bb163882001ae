package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/autosave"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/editor"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/overlay"
)

type IPersonalizationService interface {
	Commit(ctx context.Context, req *dto.CommitOverlayRequest) (*dto.CommitOverlayResponse, error)
	ApplyOperations(ctx context.Context, req *dto.ApplyOperationsRequest) (*dto.ApplyOperationsResponse, error)
	Clear(ctx context.Context, id uuid.UUID) (*dto.ClearOverlayResponse, error)
}

type personalizationService struct {
	uowFactory unitofwork.RepositoryFactory
	overlays   *overlay.Store
	templates  ITemplateService
	publisher  IPublisherService
	log        logger.ILogger
}

func NewPersonalizationService(
	uowFactory unitofwork.RepositoryFactory,
	overlays *overlay.Store,
	templates ITemplateService,
	publisher IPublisherService,
	log logger.ILogger,
) IPersonalizationService {
	return &personalizationService{
		uowFactory: uowFactory,
		overlays:   overlays,
		templates:  templates,
		publisher:  publisher,
		log:        log,
	}
}

// Commit replaces the briefing's structure with the submitted template. The
// editor normalizes it (ids for blank questions, recounted totals) and the
// overlay lands in the key-value tiers plus the durable record.
func (s *personalizationService) Commit(ctx context.Context, req *dto.CommitOverlayRequest) (*dto.CommitOverlayResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	o := editor.New(req.Template).BuildOverlay(b, req.Versao+1)
	if err := s.persist(ctx, uow, &o); err != nil {
		return nil, err
	}
	s.announceStructureChange(ctx, b.Id)

	return &dto.CommitOverlayResponse{
		BriefingId: b.Id,
		Versao:     o.Version,
		Origem:     string(entity.SourcePersonalizado),
	}, nil
}

// ApplyOperations edits the current structure incrementally: resolve whatever
// the briefing renders today (overlay or catalog), apply the operations in
// order, commit the result as the next overlay version.
func (s *personalizationService) ApplyOperations(ctx context.Context, req *dto.ApplyOperationsRequest) (*dto.ApplyOperationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	tpl, err := s.templates.ResolveForBriefing(ctx, b)
	if err != nil {
		return nil, err
	}

	var version int64
	if existing, err := s.overlays.Get(ctx, b.ClienteId, b.ProjetoId, b.Id); err == nil && existing != nil {
		version = existing.Version
	}

	e := editor.New(*tpl)
	for i, op := range req.Operacoes {
		if err := applyOperation(e, op); err != nil {
			return nil, fmt.Errorf("operacao %d (%s): %w", i, op.Tipo, err)
		}
	}

	o := e.BuildOverlay(b, version+1)
	if err := s.persist(ctx, uow, &o); err != nil {
		return nil, err
	}
	s.announceStructureChange(ctx, b.Id)

	return &dto.ApplyOperationsResponse{
		BriefingId: b.Id,
		Versao:     o.Version,
		Template:   o.Template,
	}, nil
}

// Clear removes the overlay from every tier, reverting resolution to the
// catalog template. Answers are untouched: ids that no longer map to a
// question simply stop counting.
func (s *personalizationService) Clear(ctx context.Context, id uuid.UUID) (*dto.ClearOverlayResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	if err := s.overlays.Delete(ctx, b.ClienteId, b.ProjetoId, b.Id); err != nil {
		return nil, err
	}
	if err := uow.OverlayRecordRepository().Delete(ctx, b.Id); err != nil {
		return nil, err
	}
	s.announceStructureChange(ctx, b.Id)

	return &dto.ClearOverlayResponse{
		BriefingId: b.Id,
		Origem:     string(entity.SourceCatalogo),
	}, nil
}

func (s *personalizationService) persist(ctx context.Context, uow unitofwork.UnitOfWork, o *entity.Overlay) error {
	if err := s.overlays.Save(ctx, o); err != nil {
		return err
	}
	if err := uow.OverlayRecordRepository().Upsert(ctx, o); err != nil {
		s.log.Warn("Personalization", "Durable overlay write failed, key-value tiers hold the commit", map[string]interface{}{
			"briefing_id": o.BriefingId.String(),
			"error":       err.Error(),
		})
	}
	return nil
}

// announceStructureChange nudges the flush consumer: a structure change moves
// progress even when no answer changed, and watchers should see it.
func (s *personalizationService) announceStructureChange(ctx context.Context, briefingID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(autosave.FlushedMessage{
		BriefingId: briefingID,
		FlushedAt:  time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, body); err != nil {
		s.log.Warn("Personalization", "Failed to announce structure change", map[string]interface{}{
			"briefing_id": briefingID.String(),
			"error":       err.Error(),
		})
	}
}

func applyOperation(e *editor.Editor, op dto.StructureOperation) error {
	switch op.Tipo {
	case "adicionar_secao":
		if op.Secao == nil {
			return fmt.Errorf("secao ausente")
		}
		_, err := e.AddSection(*op.Secao)
		return err
	case "remover_secao":
		_, err := e.RemoveSection(op.SecaoIndex)
		return err
	case "mover_secao_cima":
		_, err := e.MoveSectionUp(op.SecaoIndex)
		return err
	case "mover_secao_baixo":
		_, err := e.MoveSectionDown(op.SecaoIndex)
		return err
	case "editar_secao":
		_, err := e.EditSection(op.SecaoIndex, editor.SectionPatch{
			Name:        op.Nome,
			Description: op.Descricao,
		})
		return err
	case "adicionar_pergunta":
		if op.Pergunta == nil {
			return fmt.Errorf("pergunta ausente")
		}
		_, err := e.AddQuestion(op.SecaoIndex, *op.Pergunta)
		return err
	case "remover_pergunta":
		_, err := e.RemoveQuestion(op.SecaoIndex, op.PerguntaIndex)
		return err
	case "mover_pergunta_cima":
		_, err := e.MoveQuestionUp(op.SecaoIndex, op.PerguntaIndex)
		return err
	case "mover_pergunta_baixo":
		_, err := e.MoveQuestionDown(op.SecaoIndex, op.PerguntaIndex)
		return err
	case "editar_pergunta":
		patch := editor.QuestionPatch{
			Prompt:   op.Enunciado,
			Required: op.Obrigatoria,
			Choices:  op.Opcoes,
		}
		if op.TipoPergunta != nil {
			kind := entity.QuestionKind(*op.TipoPergunta)
			patch.Kind = &kind
		}
		_, err := e.EditQuestion(op.SecaoIndex, op.PerguntaIndex, patch)
		return err
	default:
		return fmt.Errorf("tipo de operacao desconhecido")
	}
}
