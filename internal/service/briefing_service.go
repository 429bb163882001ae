package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/autosave"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/overlay"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/events"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/kvstore"
	pktNats "github.com/rafasilcos/arcflowapp-sub007/pkg/nats"
)

type IBriefingService interface {
	Create(ctx context.Context, req *dto.CreateBriefingRequest) (*dto.CreateBriefingResponse, error)
	List(ctx context.Context, req *dto.ListBriefingsRequest) (*dto.ListBriefingsResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowBriefingResponse, error)
	SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	Progress(ctx context.Context, id uuid.UUID) (*dto.ProgressResponse, error)
	Conclude(ctx context.Context, id uuid.UUID) (*dto.ConcludeBriefingResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Shutdown(ctx context.Context)
}

type briefingService struct {
	uowFactory     unitofwork.RepositoryFactory
	manager        *autosave.Manager
	templates      ITemplateService
	overlays       *overlay.Store
	remote         kvstore.Store
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewBriefingService(
	uowFactory unitofwork.RepositoryFactory,
	manager *autosave.Manager,
	templates ITemplateService,
	overlays *overlay.Store,
	remote kvstore.Store,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IBriefingService {
	return &briefingService{
		uowFactory:     uowFactory,
		manager:        manager,
		templates:      templates,
		overlays:       overlays,
		remote:         remote,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *briefingService) Create(ctx context.Context, req *dto.CreateBriefingRequest) (*dto.CreateBriefingResponse, error) {
	key := catalog.Resolve(req.Disciplina, req.Area, req.Tipologia)

	b := entity.Briefing{
		Id:         uuid.New(),
		ClienteId:  req.ClienteId,
		ProjetoId:  req.ProjetoId,
		Nome:       req.Nome,
		Disciplina: key.Disciplina,
		Area:       key.Area,
		Tipologia:  key.Tipologia,
		Status:     entity.BriefingRascunho,
		CreatedAt:  time.Now(),
	}

	// Fail before touching the database when the triple resolves to nothing.
	if _, err := s.templates.ResolveForBriefing(ctx, &b); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.BriefingRepository().Create(ctx, &b); err != nil {
		return nil, err
	}

	if _, _, err := s.manager.Open(ctx, b.Id, autosave.ModeCreation); err != nil {
		s.log.Warn("Briefing", "Autosave pipeline failed to open", map[string]interface{}{
			"briefing_id": b.Id.String(),
			"error":       err.Error(),
		})
	}

	return &dto.CreateBriefingResponse{
		Id:         b.Id,
		Disciplina: b.Disciplina,
		Area:       b.Area,
		Tipologia:  b.Tipologia,
		Status:     string(b.Status),
	}, nil
}

func (s *briefingService) List(ctx context.Context, req *dto.ListBriefingsRequest) (*dto.ListBriefingsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filters := []specification.Specification{}
	if req.ClienteId != "" {
		id, err := uuid.Parse(req.ClienteId)
		if err != nil {
			return nil, err
		}
		filters = append(filters, specification.ByClienteId{ClienteId: id})
	}
	if req.ProjetoId != "" {
		id, err := uuid.Parse(req.ProjetoId)
		if err != nil {
			return nil, err
		}
		filters = append(filters, specification.ByProjetoId{ProjetoId: id})
	}
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.BriefingRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
	found, err := uow.BriefingRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BriefingSummary, len(found))
	for i, b := range found {
		items[i] = dto.BriefingSummary{
			Id:         b.Id,
			ClienteId:  b.ClienteId,
			ProjetoId:  b.ProjetoId,
			Nome:       b.Nome,
			Disciplina: b.Disciplina,
			Area:       b.Area,
			Tipologia:  b.Tipologia,
			Status:     string(b.Status),
			CreatedAt:  b.CreatedAt,
			UpdatedAt:  b.UpdatedAt,
		}
	}

	return &dto.ListBriefingsResponse{
		Briefings: items,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *briefingService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowBriefingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: id})
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

	answers, err := s.answers(ctx, b)
	if err != nil {
		return nil, err
	}

	return &dto.ShowBriefingResponse{
		Id:         b.Id,
		ClienteId:  b.ClienteId,
		ProjetoId:  b.ProjetoId,
		Nome:       b.Nome,
		Disciplina: b.Disciplina,
		Area:       b.Area,
		Tipologia:  b.Tipologia,
		Status:     string(b.Status),
		Progresso:  briefing.Progress(tpl.Sections, answers),
		Template:   *tpl,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}, nil
}

func (s *briefingService) SubmitAnswer(ctx context.Context, req *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	p, _, err := s.manager.Open(ctx, b.Id, modeFor(b.Status))
	if err != nil {
		return nil, err
	}
	p.OnAnswer(ctx, req.PerguntaId, req.Valor)

	if b.Status == entity.BriefingRascunho {
		b.Status = entity.BriefingEmAndamento
		if err := uow.BriefingRepository().Update(ctx, b); err != nil {
			s.log.Warn("Briefing", "Status transition not persisted", map[string]interface{}{
				"briefing_id": b.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	tpl, err := s.templates.ResolveForBriefing(ctx, b)
	if err != nil {
		return nil, err
	}
	answers := p.Answers()

	return &dto.SubmitAnswerResponse{
		Progresso:       briefing.Progress(tpl.Sections, answers),
		SecoesVisiveis:  sectionIDs(briefing.VisibleSections(tpl.Sections, answers)),
		SecoesCompletas: completedIDs(tpl.Sections, answers),
	}, nil
}

func (s *briefingService) Progress(ctx context.Context, id uuid.UUID) (*dto.ProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: id})
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
	answers, err := s.answers(ctx, b)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		BriefingId:      b.Id,
		Progresso:       briefing.Progress(tpl.Sections, answers),
		SecoesVisiveis:  sectionIDs(briefing.VisibleSections(tpl.Sections, answers)),
		SecoesCompletas: completedIDs(tpl.Sections, answers),
		Status:          string(b.Status),
	}, nil
}

func (s *briefingService) Conclude(ctx context.Context, id uuid.UUID) (*dto.ConcludeBriefingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	if p, ok := s.manager.Get(b.Id); ok {
		if err := p.Flush(ctx); err != nil {
			s.log.Warn("Briefing", "Final flush failed, snapshot retained", map[string]interface{}{
				"briefing_id": b.Id.String(),
				"error":       err.Error(),
			})
		}
	}
	s.manager.Close(ctx, b.Id)

	b.Status = entity.BriefingConcluido
	if err := uow.BriefingRepository().Update(ctx, b); err != nil {
		return nil, err
	}

	tpl, err := s.templates.ResolveForBriefing(ctx, b)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers(ctx, b)
	if err != nil {
		return nil, err
	}
	progress := briefing.Progress(tpl.Sections, answers)

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "BRIEFING_CONCLUIDO",
			Data: map[string]interface{}{
				"briefing_id": b.Id,
				"cliente_id":  b.ClienteId,
				"projeto_id":  b.ProjetoId,
				"nome":        b.Nome,
				"progresso":   progress,
			},
			OccurredAt: time.Now(),
		}
		// Notification is auxiliary, the conclusion itself already committed.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("Briefing", "Failed to publish BRIEFING_CONCLUIDO event", map[string]interface{}{
				"briefing_id": b.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	return &dto.ConcludeBriefingResponse{
		Id:        b.Id,
		Status:    string(b.Status),
		Progresso: progress,
	}, nil
}

func (s *briefingService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	b, err := uow.BriefingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	s.manager.Close(ctx, b.Id)

	// Close re-commits pending answers to the remote tier; clear the keys
	// afterwards so a deleted briefing leaves nothing behind in Redis.
	if err := s.remote.Delete(ctx, kvstore.AnswersKey(b.Id)); err != nil {
		s.log.Warn("Briefing", "Remote answer key not removed", map[string]interface{}{
			"briefing_id": b.Id.String(),
			"error":       err.Error(),
		})
	}
	if err := s.overlays.Delete(ctx, b.ClienteId, b.ProjetoId, b.Id); err != nil {
		s.log.Warn("Briefing", "Overlay tiers not removed", map[string]interface{}{
			"briefing_id": b.Id.String(),
			"error":       err.Error(),
		})
	}

	if err := uow.AnswerRecordRepository().Delete(ctx, b.Id); err != nil {
		return err
	}
	if err := uow.OverlayRecordRepository().Delete(ctx, b.Id); err != nil {
		return err
	}
	return uow.BriefingRepository().Delete(ctx, b.Id)
}

// Shutdown interrupts every active autosave pipeline. Wired to process
// termination so in-flight debounce windows flush before exit.
func (s *briefingService) Shutdown(ctx context.Context) {
	s.manager.Shutdown(ctx)
}

// answers returns the live store when a pipeline is open and the reconciled
// persisted tiers otherwise.
func (s *briefingService) answers(ctx context.Context, b *entity.Briefing) (entity.AnswerStore, error) {
	if p, ok := s.manager.Get(b.Id); ok {
		return p.Answers(), nil
	}
	p, source, err := s.manager.Open(ctx, b.Id, modeFor(b.Status))
	if err != nil {
		return nil, err
	}
	if source == autosave.SeedSnapshot {
		s.log.Info("Briefing", "Recovered answers from local snapshot", map[string]interface{}{
			"briefing_id": b.Id.String(),
		})
	}
	return p.Answers(), nil
}

// modeFor picks the write path. A draft has no remote record yet, so each
// answer is worth an immediate round trip; anything past draft was already
// committed remotely and coalesces edits behind the debounce window when
// reloaded.
func modeFor(status entity.BriefingStatus) autosave.Mode {
	if status == entity.BriefingRascunho {
		return autosave.ModeCreation
	}
	return autosave.ModeEdit
}

func sectionIDs(sections []entity.Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func completedIDs(sections []entity.Section, answers entity.AnswerStore) []string {
	ids := []string{}
	for _, sec := range sections {
		if !briefing.SectionVisible(sec, answers) {
			continue
		}
		if briefing.SectionComplete(sec, answers) {
			ids = append(ids, sec.ID)
		}
	}
	return ids
}
