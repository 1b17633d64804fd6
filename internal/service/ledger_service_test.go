package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stockledger/internal/model"
)

func TestLedgerService_UndoIsIdempotent(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	_, entry, err := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Flour", Day: 2, Qty: dec("6"), Type: model.EntryAddition})
	if err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}

	first, err := warehouse.ledger.Undo(ctx, entry.ID)
	if err != nil || !first.Applied {
		t.Fatalf("Expected first undo to apply, got %+v, %v", first, err)
	}
	entriesAfterFirst := ledgerLen(t, warehouse)
	closingAfterFirst, _, _ := mustItem(t, warehouse, "Flour")

	second, err := warehouse.ledger.Undo(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Expected second undo to be a no-op, got %v", err)
	}
	if second.Applied {
		t.Errorf("Expected second undo not to apply")
	}
	if !second.Original.Undone {
		t.Errorf("Expected the original to report undone")
	}
	if n := ledgerLen(t, warehouse); n != entriesAfterFirst {
		t.Errorf("Expected no new entries, got %d (was %d)", n, entriesAfterFirst)
	}
	closing, _, _ := mustItem(t, warehouse, "Flour")
	if !closing.Equal(closingAfterFirst) {
		t.Errorf("Expected closing %s to stay, got %s", closingAfterFirst, closing)
	}
}

func TestLedgerService_UndoRestoresClosingForEveryTarget(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		target model.EntryTarget
		day    int
		qty    string
	}{
		{"receipt", model.TargetReceipt, 17, "3.25"},
		{"negative_receipt", model.TargetReceipt, 1, "-2"},
		{"consumption", model.TargetConsumption, 5, "-4.5"},
		{"opening", model.TargetOpening, 0, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warehouse, _, _ := newPair(t)
			mustRegister(t, warehouse, "Flour", "10")
			before, _, _ := mustItem(t, warehouse, "Flour")

			_, entry, err := warehouse.stock.ApplyDelta(ctx, Delta{
				Item: "Flour", Day: tt.day, Qty: dec(tt.qty), Type: model.EntryAddition, Target: tt.target,
			})
			if err != nil {
				t.Fatalf("ApplyDelta failed: %v", err)
			}
			moved, _, _ := mustItem(t, warehouse, "Flour")
			if !moved.Sub(before).Equal(dec(tt.qty)) {
				t.Errorf("Expected closing to move by %s, moved by %s", tt.qty, moved.Sub(before))
			}

			if _, err := warehouse.ledger.Undo(ctx, entry.ID); err != nil {
				t.Fatalf("Undo failed: %v", err)
			}
			after, _, _ := mustItem(t, warehouse, "Flour")
			if !after.Equal(before) {
				t.Errorf("Expected closing %s after undo, got %s", before, after)
			}
		})
	}
}

func TestLedgerService_CompensatingEntryIsNotUndoable(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	_, entry, _ := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Flour", Day: 2, Qty: dec("6"), Type: model.EntryAddition})

	result, err := warehouse.ledger.Undo(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if result.Compensation == nil {
		t.Fatalf("Expected the compensating entry in the result")
	}
	if result.Compensation.Type != model.UndoEntryType(entry.ID) || result.Compensation.Reverses != entry.ID {
		t.Errorf("Unexpected compensating entry: %+v", result.Compensation)
	}
	if !result.Compensation.Qty.Equal(dec("-6")) {
		t.Errorf("Expected compensating qty -6, got %s", result.Compensation.Qty)
	}

	_, err = warehouse.ledger.Undo(ctx, result.Compensation.ID)
	if !errors.Is(err, ErrNotUndoable) {
		t.Fatalf("Expected ErrNotUndoable, got %v", err)
	}
	closing, _, _ := mustItem(t, warehouse, "Flour")
	if !closing.Equal(dec("10")) {
		t.Errorf("Expected closing 10, got %s", closing)
	}
}

func TestLedgerService_UndoUnknownEntry(t *testing.T) {
	warehouse, _, _ := newPair(t)
	_, err := warehouse.ledger.Undo(context.Background(), "nope")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Expected ErrEntryNotFound, got %v", err)
	}
}

func TestLedgerService_UndoMissingItemLeavesEntryActive(t *testing.T) {
	ctx := context.Background()
	warehouse, _, store := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	entry, err := warehouse.ledger.Append(ctx, "Flour", 3, dec("2"), model.EntryAddition)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// the row was dropped from the table after the entry was logged
	if err := store.Inventory.Replace(ctx, "Warehouse", nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if _, err := warehouse.ledger.Undo(ctx, entry.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Expected ErrItemNotFound, got %v", err)
	}
	found, err := warehouse.journal.Find(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found.Undone {
		t.Errorf("Expected the entry to stay active when the reversal failed")
	}
}

func TestLedgerService_AppendMovesStockAndUndoRestoresIt(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	entry, err := warehouse.ledger.Append(ctx, "Flour", 3, dec("7"), model.EntryAddition)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	item, _ := warehouse.stock.Item(ctx, "Flour")
	if !item.ClosingStock.Equal(dec("17")) || !item.Receipts.Day(3).Equal(dec("7")) {
		t.Errorf("Expected closing 17 and day 3 slot 7 after append, got %s and %s", item.ClosingStock, item.Receipts.Day(3))
	}

	if _, err := warehouse.ledger.Undo(ctx, entry.ID); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	item, _ = warehouse.stock.Item(ctx, "Flour")
	if !item.ClosingStock.Equal(dec("10")) || !item.Receipts.Day(3).IsZero() {
		t.Errorf("Expected closing 10 and an empty day 3 slot after undo, got %s and %s", item.ClosingStock, item.Receipts.Day(3))
	}
}

func TestLedgerService_AppendRejects(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	before := ledgerLen(t, warehouse)

	tests := []struct {
		name      string
		item      string
		day       int
		entryType string
		wantErr   error
	}{
		{"unknown_item", "Ghost", 3, model.EntryAddition, ErrItemNotFound},
		{"bad_day", "Flour", 32, model.EntryAddition, ErrValidation},
		{"missing_type", "Flour", 3, "", ErrValidation},
		{"undo_type", "Flour", 3, model.UndoEntryType("abc"), ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := warehouse.ledger.Append(ctx, tt.item, tt.day, dec("1"), tt.entryType)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if n := ledgerLen(t, warehouse); n != before {
		t.Errorf("Expected no entries from rejected appends, ledger went from %d to %d", before, n)
	}
}

func TestLedgerService_ConcurrentUndoAppliesOnce(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	_, entry, _ := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Flour", Day: 2, Qty: dec("6"), Type: model.EntryAddition})

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := warehouse.ledger.Undo(ctx, entry.ID)
			if err != nil {
				t.Errorf("Undo failed: %v", err)
				return
			}
			if res.Applied {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if applied != 1 {
		t.Errorf("Expected exactly one undo to apply, got %d", applied)
	}
	closing, _, _ := mustItem(t, warehouse, "Flour")
	if !closing.Equal(dec("10")) {
		t.Errorf("Expected closing 10, got %s", closing)
	}
}

func TestLedgerService_EntriesNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	mustRegister(t, warehouse, "Sugar", "3")
	for day := 1; day <= 3; day++ {
		if _, _, err := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Flour", Day: day, Qty: dec("1"), Type: model.EntryAddition}); err != nil {
			t.Fatalf("ApplyDelta failed: %v", err)
		}
	}

	all, total, err := warehouse.ledger.Entries(ctx, LedgerFilter{})
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if total != 5 || len(all) != 5 {
		t.Fatalf("Expected 5 entries, got %d (total %d)", len(all), total)
	}
	if all[0].Day != 3 || all[len(all)-1].Type != model.EntryNewItem {
		t.Errorf("Expected newest first, got first day %d last type %s", all[0].Day, all[len(all)-1].Type)
	}

	page, total, err := warehouse.ledger.Entries(ctx, LedgerFilter{Item: "flour", Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if total != 4 {
		t.Errorf("Expected 4 Flour entries, got %d", total)
	}
	if len(page) != 2 || page[0].Day != 2 || page[1].Day != 1 {
		t.Errorf("Unexpected page: %+v", page)
	}

	empty, _, _ := warehouse.ledger.Entries(ctx, LedgerFilter{Offset: 50})
	if len(empty) != 0 {
		t.Errorf("Expected an empty page past the end, got %d", len(empty))
	}
}
