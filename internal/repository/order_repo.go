package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
	tx TransactionManager
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db, tx: NewTransactionManager(db)}
}

func (r *orderRepository) Load(ctx context.Context) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	if err := GetDB(ctx, r.db).Order("seq asc").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) Replace(ctx context.Context, lines []model.OrderLine) error {
	rows := make([]model.OrderLine, len(lines))
	for idx, l := range lines {
		l.Seq = int64(idx)
		rows[idx] = l
	}

	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.OrderLine{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return db.CreateInBatches(rows, insertBatchSize).Error
	})
}
