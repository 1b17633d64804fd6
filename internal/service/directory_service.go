package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"stockledger/internal/model"
	"stockledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DTOs
type UpsertDirectoryRequest struct {
	ProductName string          `json:"product_name" validate:"required,max=255"`
	Category    string          `json:"category" validate:"max=100"`
	Supplier    string          `json:"supplier" validate:"max=255"`
	Contact     string          `json:"contact" validate:"max=100"`
	Email       string          `json:"email" validate:"omitempty,email"`
	MinStock    decimal.Decimal `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
}

type LowStockItem struct {
	ProductName  string          `json:"product_name"`
	Category     string          `json:"category"`
	Supplier     string          `json:"supplier"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

type DirectoryService interface {
	CategoryLookup
	List(ctx context.Context) ([]model.DirectoryEntry, error)
	Upsert(ctx context.Context, req UpsertDirectoryRequest) (model.DirectoryEntry, error)
	Lookup(ctx context.Context, product string) (model.DirectoryEntry, error)
	BySupplier(ctx context.Context, supplier string) ([]model.DirectoryEntry, error)
	LowStock(ctx context.Context, items []model.Item) ([]LowStockItem, error)
}

type directoryService struct {
	repo      repository.DirectoryRepository
	txManager repository.TransactionManager
	logger    logrus.FieldLogger
}

func NewDirectoryService(repo repository.DirectoryRepository, txManager repository.TransactionManager, logger logrus.FieldLogger) DirectoryService {
	return &directoryService{
		repo:      repo,
		txManager: txManager,
		logger:    logger.WithField("module", "directory"),
	}
}

func (s *directoryService) List(ctx context.Context) ([]model.DirectoryEntry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].ProductName) < strings.ToLower(entries[j].ProductName)
	})
	return entries, nil
}

func (s *directoryService) Upsert(ctx context.Context, req UpsertDirectoryRequest) (model.DirectoryEntry, error) {
	req.ProductName = strings.TrimSpace(req.ProductName)
	if err := validateStruct(req); err != nil {
		return model.DirectoryEntry{}, err
	}
	if err := requireNonNegative("min_stock", req.MinStock); err != nil {
		return model.DirectoryEntry{}, err
	}
	if err := requireNonNegative("price", req.Price); err != nil {
		return model.DirectoryEntry{}, err
	}
	if err := requireScale("price", req.Price, 2); err != nil {
		return model.DirectoryEntry{}, err
	}

	now := time.Now()
	entry := model.DirectoryEntry{
		ProductName: req.ProductName,
		Category:    req.Category,
		Supplier:    strings.TrimSpace(req.Supplier),
		Contact:     req.Contact,
		Email:       req.Email,
		MinStock:    req.MinStock,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if entry.Category == "" {
		entry.Category = model.DefaultCategory
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		entries, err := s.repo.Load(txCtx)
		if err != nil {
			return fmt.Errorf("load directory: %w", err)
		}
		replaced := false
		for idx := range entries {
			if strings.EqualFold(entries[idx].ProductName, entry.ProductName) {
				entry.CreatedAt = entries[idx].CreatedAt
				entries[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, entry)
		}
		return s.repo.Replace(txCtx, entries)
	})
	if err != nil {
		return model.DirectoryEntry{}, err
	}

	s.logger.WithField("item", entry.ProductName).Info("directory entry saved")
	return entry, nil
}

func (s *directoryService) Lookup(ctx context.Context, product string) (model.DirectoryEntry, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return model.DirectoryEntry{}, fmt.Errorf("load directory: %w", err)
	}
	product = strings.TrimSpace(product)
	for _, e := range entries {
		if strings.EqualFold(e.ProductName, product) {
			return e, nil
		}
	}
	return model.DirectoryEntry{}, fmt.Errorf("%w: %s", ErrItemNotFound, product)
}

func (s *directoryService) BySupplier(ctx context.Context, supplier string) ([]model.DirectoryEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	supplier = strings.TrimSpace(supplier)
	out := make([]model.DirectoryEntry, 0)
	for _, e := range entries {
		if strings.EqualFold(e.Supplier, supplier) {
			out = append(out, e)
		}
	}
	return out, nil
}

// CategoryFor falls back to the default category when the product is not listed.
func (s *directoryService) CategoryFor(ctx context.Context, product string) string {
	entry, err := s.Lookup(ctx, product)
	if err != nil || entry.Category == "" {
		return model.DefaultCategory
	}
	return entry.Category
}

// LowStock lists items whose Closing Stock is below the directory minimum.
func (s *directoryService) LowStock(ctx context.Context, items []model.Item) ([]LowStockItem, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	byName := make(map[string]model.DirectoryEntry, len(entries))
	for _, e := range entries {
		byName[strings.ToLower(e.ProductName)] = e
	}

	out := make([]LowStockItem, 0)
	for _, item := range items {
		entry, ok := byName[strings.ToLower(item.ProductName)]
		if !ok || !entry.MinStock.IsPositive() {
			continue
		}
		if item.ClosingStock.LessThan(entry.MinStock) {
			out = append(out, LowStockItem{
				ProductName:  item.ProductName,
				Category:     item.Category,
				Supplier:     entry.Supplier,
				ClosingStock: item.ClosingStock,
				MinStock:     entry.MinStock,
				Shortfall:    entry.MinStock.Sub(item.ClosingStock),
			})
		}
	}
	return out, nil
}
