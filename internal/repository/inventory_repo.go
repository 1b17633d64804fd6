package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

const insertBatchSize = 200

type inventoryRepository struct {
	db *gorm.DB
	tx TransactionManager
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db, tx: NewTransactionManager(db)}
}

func (r *inventoryRepository) Load(ctx context.Context, location string) ([]model.Item, error) {
	var items []model.Item
	if err := GetDB(ctx, r.db).
		Where("location = ?", location).
		Order("position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) Replace(ctx context.Context, location string, items []model.Item) error {
	rows := make([]model.Item, len(items))
	for idx, item := range items {
		item.ID = 0
		item.Location = location
		item.Position = idx
		rows[idx] = item
	}

	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		if err := db.Where("location = ?", location).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return db.CreateInBatches(rows, insertBatchSize).Error
	})
}
