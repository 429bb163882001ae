package contract

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/entity"
)

// AnswerRecordRepository persists the durable copy of a briefing's answer
// store. Upsert replaces the whole document; there is no per-answer row.
type AnswerRecordRepository interface {
	Upsert(ctx context.Context, briefingID uuid.UUID, store entity.AnswerStore) error
	Find(ctx context.Context, briefingID uuid.UUID) (entity.AnswerStore, error)
	Delete(ctx context.Context, briefingID uuid.UUID) error
}
