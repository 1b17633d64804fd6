package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

type directoryRepository struct {
	db *gorm.DB
	tx TransactionManager
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db, tx: NewTransactionManager(db)}
}

func (r *directoryRepository) Load(ctx context.Context) ([]model.DirectoryEntry, error) {
	var entries []model.DirectoryEntry
	if err := GetDB(ctx, r.db).Order("product_name asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *directoryRepository) Replace(ctx context.Context, entries []model.DirectoryEntry) error {
	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DirectoryEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return db.CreateInBatches(entries, insertBatchSize).Error
	})
}
