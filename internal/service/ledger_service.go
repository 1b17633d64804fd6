package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type LedgerFilter struct {
	Item   string
	Offset int
	Limit  int
}

// UndoResult reports what an undo did. Applied is false when the entry had
// already been undone and nothing changed.
type UndoResult struct {
	Applied      bool               `json:"applied"`
	Original     model.LedgerEntry  `json:"original"`
	Compensation *model.LedgerEntry `json:"compensation,omitempty"`
	Item         *model.Item        `json:"item,omitempty"`
}

type LedgerService interface {
	Append(ctx context.Context, item string, day int, qty decimal.Decimal, entryType string) (model.LedgerEntry, error)
	Entries(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error)
	Undo(ctx context.Context, id string) (UndoResult, error)
}

type ledgerService struct {
	journal   Journal
	stock     StockService
	txManager repository.TransactionManager
	logger    logrus.FieldLogger
	undoMu    sync.Mutex
}

func NewLedgerService(journal Journal, stock StockService, txManager repository.TransactionManager, logger logrus.FieldLogger) LedgerService {
	return &ledgerService{
		journal:   journal,
		stock:     stock,
		txManager: txManager,
		logger:    logger.WithFields(logrus.Fields{"module": "ledger", "location": stock.Location()}),
	}
}

// Append books qty on the item's day slot and returns the entry it logged, so
// every entry in the journal is backed by the stock change it describes.
func (s *ledgerService) Append(ctx context.Context, item string, day int, qty decimal.Decimal, entryType string) (model.LedgerEntry, error) {
	if model.IsUndoEntryType(entryType) {
		return model.LedgerEntry{}, fmt.Errorf("%w: undo entries are written by Undo", ErrValidation)
	}
	_, entry, err := s.stock.ApplyDelta(ctx, Delta{
		Item:   strings.TrimSpace(item),
		Day:    day,
		Qty:    qty,
		Type:   entryType,
		Target: model.TargetReceipt,
	})
	if err != nil {
		return model.LedgerEntry{}, err
	}
	return entry, nil
}

func (s *ledgerService) Entries(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error) {
	entries, err := s.journal.Entries(ctx)
	if err != nil {
		return nil, 0, err
	}

	if filter.Item != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if strings.EqualFold(e.Item, filter.Item) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	total := int64(len(entries))
	if filter.Offset >= len(entries) {
		return []model.LedgerEntry{}, total, nil
	}
	entries = entries[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(entries) {
		entries = entries[:filter.Limit]
	}
	return entries, total, nil
}

func (s *ledgerService) Undo(ctx context.Context, id string) (UndoResult, error) {
	s.undoMu.Lock()
	defer s.undoMu.Unlock()

	var result UndoResult
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		original, err := s.journal.Find(txCtx, id)
		if err != nil {
			return err
		}
		result.Original = original

		if original.Undone {
			return nil
		}
		if original.IsCompensating() {
			return fmt.Errorf("%w: %s reverses %s", ErrNotUndoable, original.ID, original.Reverses)
		}

		item, compensation, err := s.stock.ApplyDelta(txCtx, Delta{
			Item:     original.Item,
			Day:      original.Day,
			Qty:      original.Qty.Neg(),
			Type:     model.UndoEntryType(original.ID),
			Target:   original.Target,
			Reverses: original.ID,
		})
		if err != nil {
			return err
		}
		if err := s.journal.MarkUndone(txCtx, original.ID); err != nil {
			return fmt.Errorf("mark undone: %w", err)
		}

		result.Applied = true
		result.Original.Undone = true
		result.Compensation = &compensation
		result.Item = &item
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEntryNotFound) {
			s.logger.WithField("entry_id", id).Warn("undo failed: " + err.Error())
		}
		return UndoResult{}, err
	}

	if result.Applied {
		s.logger.WithFields(logrus.Fields{
			"entry_id": id,
			"item":     result.Original.Item,
		}).Info("entry undone")
	}
	return result, nil
}
