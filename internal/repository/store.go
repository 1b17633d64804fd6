package repository

import (
	"context"

	"stockledger/internal/model"

	"gorm.io/gorm"
)

// InventoryRepository loads and replaces a location's inventory table.
type InventoryRepository interface {
	Load(ctx context.Context, location string) ([]model.Item, error)
	Replace(ctx context.Context, location string, items []model.Item) error
}

// LedgerRepository loads and replaces a location's ledger, newest entry first.
type LedgerRepository interface {
	Load(ctx context.Context, location string) ([]model.LedgerEntry, error)
	Replace(ctx context.Context, location string, entries []model.LedgerEntry) error
}

// OrderRepository loads and replaces the shared requisition queue.
type OrderRepository interface {
	Load(ctx context.Context) ([]model.OrderLine, error)
	Replace(ctx context.Context, lines []model.OrderLine) error
}

// DirectoryRepository loads and replaces the supplier directory.
type DirectoryRepository interface {
	Load(ctx context.Context) ([]model.DirectoryEntry, error)
	Replace(ctx context.Context, entries []model.DirectoryEntry) error
}

// Store bundles the tables of one backing store.
type Store struct {
	Inventory InventoryRepository
	Ledger    LedgerRepository
	Orders    OrderRepository
	Directory DirectoryRepository
	Tx        TransactionManager
}

// NewGormStore builds a Store over a SQL database.
func NewGormStore(db *gorm.DB) Store {
	return Store{
		Inventory: NewInventoryRepository(db),
		Ledger:    NewLedgerRepository(db),
		Orders:    NewOrderRepository(db),
		Directory: NewDirectoryRepository(db),
		Tx:        NewTransactionManager(db),
	}
}
