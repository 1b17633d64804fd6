// Package memory keeps every table in process memory. It backs tests and
// single-process demos; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"stockledger/internal/model"
	"stockledger/internal/repository"
)

type tables struct {
	mu        sync.RWMutex
	inventory map[string][]model.Item
	ledger    map[string][]model.LedgerEntry
	orders    []model.OrderLine
	directory []model.DirectoryEntry
}

// NewStore returns an empty in-memory store.
func NewStore() repository.Store {
	t := &tables{
		inventory: make(map[string][]model.Item),
		ledger:    make(map[string][]model.LedgerEntry),
	}
	return repository.Store{
		Inventory: inventoryTable{t},
		Ledger:    ledgerTable{t},
		Orders:    orderTable{t},
		Directory: directoryTable{t},
		Tx:        repository.NewPassThroughTxManager(),
	}
}

type inventoryTable struct{ t *tables }

func (r inventoryTable) Load(_ context.Context, location string) ([]model.Item, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return append([]model.Item(nil), r.t.inventory[location]...), nil
}

func (r inventoryTable) Replace(_ context.Context, location string, items []model.Item) error {
	rows := make([]model.Item, len(items))
	for idx, item := range items {
		item.Location = location
		item.Position = idx
		rows[idx] = item
	}
	r.t.mu.Lock()
	r.t.inventory[location] = rows
	r.t.mu.Unlock()
	return nil
}

type ledgerTable struct{ t *tables }

func (r ledgerTable) Load(_ context.Context, location string) ([]model.LedgerEntry, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return append([]model.LedgerEntry(nil), r.t.ledger[location]...), nil
}

func (r ledgerTable) Replace(_ context.Context, location string, entries []model.LedgerEntry) error {
	rows := make([]model.LedgerEntry, len(entries))
	for idx, e := range entries {
		e.Location = location
		e.Seq = int64(len(entries) - idx)
		rows[idx] = e
	}
	r.t.mu.Lock()
	r.t.ledger[location] = rows
	r.t.mu.Unlock()
	return nil
}

type orderTable struct{ t *tables }

func (r orderTable) Load(_ context.Context) ([]model.OrderLine, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return append([]model.OrderLine(nil), r.t.orders...), nil
}

func (r orderTable) Replace(_ context.Context, lines []model.OrderLine) error {
	rows := make([]model.OrderLine, len(lines))
	for idx, l := range lines {
		l.Seq = int64(idx)
		rows[idx] = l
	}
	r.t.mu.Lock()
	r.t.orders = rows
	r.t.mu.Unlock()
	return nil
}

type directoryTable struct{ t *tables }

func (r directoryTable) Load(_ context.Context) ([]model.DirectoryEntry, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return append([]model.DirectoryEntry(nil), r.t.directory...), nil
}

func (r directoryTable) Replace(_ context.Context, entries []model.DirectoryEntry) error {
	r.t.mu.Lock()
	r.t.directory = append([]model.DirectoryEntry(nil), entries...)
	r.t.mu.Unlock()
	return nil
}
