package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
	tx TransactionManager
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db, tx: NewTransactionManager(db)}
}

func (r *ledgerRepository) Load(ctx context.Context, location string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	if err := GetDB(ctx, r.db).
		Where("location = ?", location).
		Order("seq desc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Replace stores entries given newest first; seq counts up from the oldest.
func (r *ledgerRepository) Replace(ctx context.Context, location string, entries []model.LedgerEntry) error {
	rows := make([]model.LedgerEntry, len(entries))
	for idx, e := range entries {
		e.Location = location
		e.Seq = int64(len(entries) - idx)
		rows[idx] = e
	}

	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		if err := db.Where("location = ?", location).Delete(&model.LedgerEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return db.CreateInBatches(rows, insertBatchSize).Error
	})
}
