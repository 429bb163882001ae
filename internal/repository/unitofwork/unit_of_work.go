package unitofwork

import (
	"context"

	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BriefingRepository() contract.BriefingRepository
	AnswerRecordRepository() contract.AnswerRecordRepository
	OverlayRecordRepository() contract.OverlayRecordRepository
	CatalogTemplateRepository() contract.CatalogTemplateRepository
}
