package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/specification"
)

type BriefingRepository interface {
	Create(ctx context.Context, briefing *entity.Briefing) error
	Update(ctx context.Context, briefing *entity.Briefing) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Briefing, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Briefing, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
