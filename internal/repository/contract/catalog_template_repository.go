package contract

import (
	"context"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/catalog"
)

type CatalogTemplateRepository interface {
	Upsert(ctx context.Context, key catalog.Key, tpl *entity.Template) error
	Find(ctx context.Context, key catalog.Key) (*entity.Template, error)
	Keys(ctx context.Context) ([]catalog.Key, error)
}
