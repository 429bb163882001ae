package service

import (
	"context"

	"github.com/rafasilcos/arcflowapp-sub007/internal/dto"
	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/unitofwork"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/resolver"
)

type ITemplateService interface {
	Resolve(ctx context.Context, req *dto.ResolveTemplateRequest) (*dto.ResolveTemplateResponse, error)
	ResolveForBriefing(ctx context.Context, b *entity.Briefing) (*entity.Template, error)
}

type templateService struct {
	resolver *resolver.Resolver
	catalog  catalog.Catalog
	log      logger.ILogger
}

func NewTemplateService(r *resolver.Resolver, cat catalog.Catalog, log logger.ILogger) ITemplateService {
	return &templateService{
		resolver: r,
		catalog:  cat,
		log:      log,
	}
}

// Resolve answers a catalog query without a briefing instance: normalize the
// triple, walk the fallback chain, report whether a fallback was served.
func (s *templateService) Resolve(ctx context.Context, req *dto.ResolveTemplateRequest) (*dto.ResolveTemplateResponse, error) {
	key := catalog.Resolve(req.Disciplina, req.Area, req.Tipologia)
	for _, candidate := range catalog.FallbackChain(key) {
		tpl, err := s.catalog.Get(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if tpl == nil {
			continue
		}
		tpl.Source = entity.SourceCatalogo
		tpl.Tags = entity.TemplateTags{
			Disciplina: key.Disciplina,
			Area:       key.Area,
			Tipologia:  key.Tipologia,
		}
		tpl.TotalQuestions = tpl.CountQuestions()
		return &dto.ResolveTemplateResponse{
			Template: *tpl,
			Fallback: candidate != key,
		}, nil
	}
	return nil, resolver.ErrNoTemplate
}

func (s *templateService) ResolveForBriefing(ctx context.Context, b *entity.Briefing) (*entity.Template, error) {
	return s.resolver.Resolve(ctx, b)
}

// DbCatalog serves catalog templates from Postgres, falling back to the
// builtin defaults when the database has no entry (or is unreachable).
type DbCatalog struct {
	uowFactory unitofwork.RepositoryFactory
	builtin    *catalog.StaticCatalog
	log        logger.ILogger
}

func NewDbCatalog(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *DbCatalog {
	return &DbCatalog{
		uowFactory: uowFactory,
		builtin:    catalog.NewStaticCatalog(),
		log:        log,
	}
}

func (c *DbCatalog) Get(ctx context.Context, key catalog.Key) (*entity.Template, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.CatalogTemplateRepository().Find(ctx, key)
	if err != nil {
		c.log.Warn("Catalog", "Database lookup failed, serving builtin entry", map[string]interface{}{
			"key":   key.String(),
			"error": err.Error(),
		})
		return c.builtin.Get(ctx, key)
	}
	if tpl != nil {
		return tpl, nil
	}
	return c.builtin.Get(ctx, key)
}
