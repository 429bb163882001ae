package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

type OverlayRecordRepository interface {
	Upsert(ctx context.Context, overlay *entity.Overlay) error
	Find(ctx context.Context, briefingID uuid.UUID) (*entity.Overlay, error)
	Delete(ctx context.Context, briefingID uuid.UUID) error
}
