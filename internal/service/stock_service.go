package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DuplicatePolicy decides what RegisterItem does with a name already in the table.
type DuplicatePolicy string

const (
	DuplicateReject    DuplicatePolicy = "reject"
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// CategoryLookup supplies a default category for newly registered items.
type CategoryLookup interface {
	CategoryFor(ctx context.Context, product string) string
}

// DTOs
type RegisterItemRequest struct {
	ProductName  string          `json:"product_name" validate:"required,max=255"`
	UOM          string          `json:"uom" validate:"max=30"`
	Category     string          `json:"category" validate:"max=100"`
	OpeningStock decimal.Decimal `json:"opening_stock"`
}

// Delta is one signed change of an item's stock.
type Delta struct {
	Item     string            `json:"item" validate:"required"`
	Day      int               `json:"day" validate:"gte=0,lte=31"`
	Qty      decimal.Decimal   `json:"qty"`
	Type     string            `json:"type" validate:"required"`
	Target   model.EntryTarget `json:"target"`
	Reverses string            `json:"-"`
}

// UpdateRowRequest is a batch edit of one row. Days maps day of month to the new slot value.
type UpdateRowRequest struct {
	Days        map[int]decimal.Decimal `json:"days"`
	Consumption *decimal.Decimal        `json:"consumption"`
}

type StockConfig struct {
	Location        string
	DuplicatePolicy DuplicatePolicy
	Categories      CategoryLookup
}

type StockService interface {
	Location() string
	Items(ctx context.Context) ([]model.Item, error)
	Item(ctx context.Context, name string) (model.Item, error)
	RegisterItem(ctx context.Context, req RegisterItemRequest) (model.Item, error)
	ApplyDelta(ctx context.Context, d Delta) (model.Item, model.LedgerEntry, error)
	SetOpeningStock(ctx context.Context, name string, qty decimal.Decimal) (model.Item, error)
	UpdateRow(ctx context.Context, name string, req UpdateRowRequest) (model.Item, []model.LedgerEntry, error)
	RecordPhysicalCount(ctx context.Context, name string, count decimal.NullDecimal) (model.Item, error)
	RecalculateAll(ctx context.Context) (int, error)
}

type stockService struct {
	cfg       StockConfig
	repo      repository.InventoryRepository
	journal   Journal
	txManager repository.TransactionManager
	logger    logrus.FieldLogger
	mu        sync.Mutex
}

func NewStockService(
	cfg StockConfig,
	repo repository.InventoryRepository,
	journal Journal,
	txManager repository.TransactionManager,
	logger logrus.FieldLogger,
) StockService {
	if cfg.DuplicatePolicy == "" {
		cfg.DuplicatePolicy = DuplicateReject
	}
	return &stockService{
		cfg:       cfg,
		repo:      repo,
		journal:   journal,
		txManager: txManager,
		logger:    logger.WithFields(logrus.Fields{"module": "stock", "location": cfg.Location}),
	}
}

func (s *stockService) Location() string {
	return s.cfg.Location
}

func (s *stockService) Items(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.Load(ctx, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	for idx := range items {
		items[idx].Recalc()
	}
	return items, nil
}

func (s *stockService) Item(ctx context.Context, name string) (model.Item, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return model.Item{}, err
	}
	idx := model.FindItem(items, strings.TrimSpace(name))
	if idx < 0 {
		return model.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	return items[idx], nil
}

func (s *stockService) RegisterItem(ctx context.Context, req RegisterItemRequest) (model.Item, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if err := validateStruct(req); err != nil {
		return model.Item{}, err
	}
	if err := requireNonNegative("opening_stock", req.OpeningStock); err != nil {
		return model.Item{}, err
	}

	category := req.Category
	if category == "" && s.cfg.Categories != nil {
		category = s.cfg.Categories.CategoryFor(ctx, req.ProductName)
	}
	item := model.NewItem(s.cfg.Location, req.ProductName, req.UOM, category, req.OpeningStock)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items, err := s.repo.Load(txCtx, s.cfg.Location)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}

		if idx := model.FindItem(items, item.ProductName); idx >= 0 {
			if s.cfg.DuplicatePolicy != DuplicateOverwrite {
				return fmt.Errorf("%w: item %q already exists", ErrValidation, item.ProductName)
			}
			s.logger.WithField("item", item.ProductName).Warn("overwriting existing item")
			items[idx] = item
		} else {
			items = append(items, item)
		}

		if err := s.repo.Replace(txCtx, s.cfg.Location, items); err != nil {
			return fmt.Errorf("save inventory: %w", err)
		}
		_, err = s.journal.Append(txCtx, model.LedgerEntry{
			Item:   item.ProductName,
			Day:    0,
			Qty:    item.OpeningStock,
			Type:   model.EntryNewItem,
			Target: model.TargetOpening,
		})
		return err
	})
	if err != nil {
		return model.Item{}, err
	}

	s.logger.WithField("item", item.ProductName).Info("item registered")
	return item, nil
}

func (s *stockService) ApplyDelta(ctx context.Context, d Delta) (model.Item, model.LedgerEntry, error) {
	if d.Target == "" {
		d.Target = model.TargetReceipt
	}
	if err := validateStruct(d); err != nil {
		return model.Item{}, model.LedgerEntry{}, err
	}
	if !d.Target.Valid() {
		return model.Item{}, model.LedgerEntry{}, fmt.Errorf("%w: unknown target %q", ErrValidation, d.Target)
	}
	if err := requireScale("qty", d.Qty, QuantityScale); err != nil {
		return model.Item{}, model.LedgerEntry{}, err
	}

	var entry model.LedgerEntry
	item, err := s.mutate(ctx, d.Item, func(item *model.Item) ([]model.LedgerEntry, error) {
		applyTarget(item, d.Day, d.Qty, d.Target)
		return []model.LedgerEntry{{
			Item:     item.ProductName,
			Day:      d.Day,
			Qty:      d.Qty,
			Type:     d.Type,
			Target:   d.Target,
			Reverses: d.Reverses,
		}}, nil
	}, func(written []model.LedgerEntry) {
		entry = written[0]
	})
	if err != nil {
		return model.Item{}, model.LedgerEntry{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"item":     item.ProductName,
		"day":      d.Day,
		"qty":      d.Qty.String(),
		"type":     d.Type,
		"entry_id": entry.ID,
	}).Info("delta applied")
	return item, entry, nil
}

func (s *stockService) SetOpeningStock(ctx context.Context, name string, qty decimal.Decimal) (model.Item, error) {
	if err := requireNonNegative("opening_stock", qty); err != nil {
		return model.Item{}, err
	}
	return s.mutate(ctx, name, func(item *model.Item) ([]model.LedgerEntry, error) {
		diff := qty.Sub(item.OpeningStock)
		if diff.IsZero() {
			return nil, nil
		}
		applyTarget(item, 0, diff, model.TargetOpening)
		return []model.LedgerEntry{{
			Item:   item.ProductName,
			Qty:    diff,
			Type:   model.EntryInitialStockSet,
			Target: model.TargetOpening,
		}}, nil
	}, nil)
}

// UpdateRow writes one Table Update entry per changed field so every change stays undoable on its own.
func (s *stockService) UpdateRow(ctx context.Context, name string, req UpdateRowRequest) (model.Item, []model.LedgerEntry, error) {
	days := make([]int, 0, len(req.Days))
	for day, v := range req.Days {
		if day < 1 || day > model.DaysInMonth {
			return model.Item{}, nil, fmt.Errorf("%w: day %d out of range", ErrValidation, day)
		}
		if err := requireNonNegative(fmt.Sprintf("day %d", day), v); err != nil {
			return model.Item{}, nil, err
		}
		days = append(days, day)
	}
	sort.Ints(days)
	if req.Consumption != nil {
		if err := requireNonNegative("consumption", *req.Consumption); err != nil {
			return model.Item{}, nil, err
		}
	}

	var written []model.LedgerEntry
	item, err := s.mutate(ctx, name, func(item *model.Item) ([]model.LedgerEntry, error) {
		var entries []model.LedgerEntry
		for _, day := range days {
			diff := req.Days[day].Sub(item.Receipts.Day(day))
			if diff.IsZero() {
				continue
			}
			applyTarget(item, day, diff, model.TargetReceipt)
			entries = append(entries, model.LedgerEntry{
				Item:   item.ProductName,
				Day:    day,
				Qty:    diff,
				Type:   model.EntryTableUpdate,
				Target: model.TargetReceipt,
			})
		}
		if req.Consumption != nil {
			// stock moves opposite to consumption
			diff := item.Consumption.Sub(*req.Consumption)
			if !diff.IsZero() {
				applyTarget(item, 0, diff, model.TargetConsumption)
				entries = append(entries, model.LedgerEntry{
					Item:   item.ProductName,
					Qty:    diff,
					Type:   model.EntryTableUpdate,
					Target: model.TargetConsumption,
				})
			}
		}
		return entries, nil
	}, func(entries []model.LedgerEntry) {
		written = entries
	})
	if err != nil {
		return model.Item{}, nil, err
	}
	return item, written, nil
}

// RecordPhysicalCount does not move stock, so it leaves no ledger entry.
func (s *stockService) RecordPhysicalCount(ctx context.Context, name string, count decimal.NullDecimal) (model.Item, error) {
	if count.Valid {
		if err := requireNonNegative("physical_count", count.Decimal); err != nil {
			return model.Item{}, err
		}
	}
	return s.mutate(ctx, name, func(item *model.Item) ([]model.LedgerEntry, error) {
		item.PhysicalCount = count
		item.Recalc()
		return nil, nil
	}, nil)
}

func (s *stockService) RecalculateAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items, err := s.repo.Load(txCtx, s.cfg.Location)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		for idx := range items {
			items[idx].Recalc()
		}
		count = len(items)
		return s.repo.Replace(txCtx, s.cfg.Location, items)
	})
	if err != nil {
		return 0, err
	}
	s.logger.WithField("items", count).Info("inventory recalculated")
	return count, nil
}

// mutate runs one read-modify-write cycle on a single item. fn edits the item
// and returns the ledger entries to append; done receives them once written.
func (s *stockService) mutate(
	ctx context.Context,
	name string,
	fn func(item *model.Item) ([]model.LedgerEntry, error),
	done func([]model.LedgerEntry),
) (model.Item, error) {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	var result model.Item
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items, err := s.repo.Load(txCtx, s.cfg.Location)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		idx := model.FindItem(items, name)
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrItemNotFound, name)
		}

		item := items[idx]
		item.Recalc()
		pending, err := fn(&item)
		if err != nil {
			return err
		}
		items[idx] = item

		if err := s.repo.Replace(txCtx, s.cfg.Location, items); err != nil {
			return fmt.Errorf("save inventory: %w", err)
		}

		written := make([]model.LedgerEntry, 0, len(pending))
		for _, e := range pending {
			entry, err := s.journal.Append(txCtx, e)
			if err != nil {
				return fmt.Errorf("append ledger: %w", err)
			}
			written = append(written, entry)
		}
		if done != nil {
			done(written)
		}
		result = item
		return nil
	})
	return result, err
}

// applyTarget moves Closing Stock by qty through the raw input named by target.
func applyTarget(item *model.Item, day int, qty decimal.Decimal, target model.EntryTarget) {
	switch target {
	case model.TargetConsumption:
		item.Consumption = item.Consumption.Sub(qty)
	case model.TargetOpening:
		item.OpeningStock = item.OpeningStock.Add(qty)
	default:
		if day >= 1 && day <= model.DaysInMonth {
			item.Receipts[day-1] = item.Receipts[day-1].Add(qty)
		}
	}
	item.Recalc()
}
