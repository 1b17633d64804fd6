package service

import (
	"context"
	"io"
	"testing"
	"time"

	"stockledger/internal/queuelock"
	"stockledger/internal/repository"
	"stockledger/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// testDay is the day of month every test clock reports.
const testDay = 5

func fixedClock() time.Time {
	return time.Date(2026, time.March, testDay, 9, 30, 0, 0, time.UTC)
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// site is the set of engines one location process would build.
type site struct {
	stock       StockService
	ledger      LedgerService
	journal     Journal
	requisition RequisitionService
	directory   DirectoryService
}

func newSite(store repository.Store, lock queuelock.Locker, location string, policy DuplicatePolicy) *site {
	logger := quietLogger()
	directory := NewDirectoryService(store.Directory, store.Tx, logger)
	journal := NewJournal(location, store.Ledger, fixedClock)
	stock := NewStockService(StockConfig{
		Location:        location,
		DuplicatePolicy: policy,
		Categories:      directory,
	}, store.Inventory, journal, store.Tx, logger)
	return &site{
		stock:       stock,
		ledger:      NewLedgerService(journal, stock, store.Tx, logger),
		journal:     journal,
		requisition: NewRequisitionService(stock, store.Orders, store.Tx, lock, fixedClock, logger),
		directory:   directory,
	}
}

// newPair returns a warehouse and an outlet sharing one store and queue lock.
func newPair(t *testing.T) (warehouse, outlet *site, store repository.Store) {
	t.Helper()
	store = memory.NewStore()
	lock := queuelock.NewLocal(time.Second)
	warehouse = newSite(store, lock, "Warehouse", DuplicateReject)
	outlet = newSite(store, lock, "Outlet A", DuplicateReject)
	return warehouse, outlet, store
}

func mustRegister(t *testing.T, s *site, name, opening string) {
	t.Helper()
	if _, err := s.stock.RegisterItem(context.Background(), RegisterItemRequest{
		ProductName:  name,
		UOM:          "kg",
		OpeningStock: dec(opening),
	}); err != nil {
		t.Fatalf("Failed to register %s: %v", name, err)
	}
}

func mustItem(t *testing.T, s *site, name string) (closing, received, consumption decimal.Decimal) {
	t.Helper()
	item, err := s.stock.Item(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", name, err)
	}
	return item.ClosingStock, item.TotalReceived, item.Consumption
}

func ledgerLen(t *testing.T, s *site) int {
	t.Helper()
	entries, err := s.journal.Entries(context.Background())
	if err != nil {
		t.Fatalf("Failed to load ledger: %v", err)
	}
	return len(entries)
}
