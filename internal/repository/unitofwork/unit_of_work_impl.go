package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/contract"
	"github.com/rafasilcos/arcflowapp-sub007/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) BriefingRepository() contract.BriefingRepository {
	return implementation.NewBriefingRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnswerRecordRepository() contract.AnswerRecordRepository {
	return implementation.NewAnswerRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) OverlayRecordRepository() contract.OverlayRecordRepository {
	return implementation.NewOverlayRecordRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CatalogTemplateRepository() contract.CatalogTemplateRepository {
	return implementation.NewCatalogTemplateRepository(u.getDB())
}
