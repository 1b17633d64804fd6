package service

import (
	"context"
	"errors"
	"testing"

	"stockledger/internal/model"
	"stockledger/internal/queuelock"
	"stockledger/internal/repository/memory"

	"github.com/shopspring/decimal"
)

func TestStockService_FlourAdditionAndUndo(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	item, entry, err := warehouse.stock.ApplyDelta(ctx, Delta{
		Item: "Flour", Day: 5, Qty: dec("20"), Type: model.EntryAddition,
	})
	if err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}
	if !item.TotalReceived.Equal(dec("20")) {
		t.Errorf("Expected total received 20, got %s", item.TotalReceived)
	}
	if !item.ClosingStock.Equal(dec("30")) {
		t.Errorf("Expected closing stock 30, got %s", item.ClosingStock)
	}
	if entry.Day != 5 || !entry.Qty.Equal(dec("20")) || entry.Type != model.EntryAddition {
		t.Errorf("Ledger entry does not carry the delta: %+v", entry)
	}

	result, err := warehouse.ledger.Undo(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !result.Applied {
		t.Fatalf("Expected undo to apply")
	}

	closing, received, _ := mustItem(t, warehouse, "Flour")
	if !received.IsZero() {
		t.Errorf("Expected total received 0 after undo, got %s", received)
	}
	if !closing.Equal(dec("10")) {
		t.Errorf("Expected closing stock 10 after undo, got %s", closing)
	}
}

func TestStockService_RegisterItemLogsOpening(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Rice", "12.5")

	entries, err := warehouse.journal.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 ledger entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Type != model.EntryNewItem || e.Day != 0 || !e.Qty.Equal(dec("12.5")) || e.Target != model.TargetOpening {
		t.Errorf("Unexpected registration entry: %+v", e)
	}

	item, err := warehouse.stock.Item(ctx, "Rice")
	if err != nil {
		t.Fatalf("Item failed: %v", err)
	}
	if !item.ClosingStock.Equal(dec("12.5")) || !item.TotalReceived.IsZero() || !item.Consumption.IsZero() {
		t.Errorf("Unexpected fresh item: %+v", item)
	}
	if item.UOM != "kg" {
		t.Errorf("Expected UOM kg, got %s", item.UOM)
	}
}

func TestStockService_DuplicatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("reject", func(t *testing.T) {
		warehouse, _, _ := newPair(t)
		mustRegister(t, warehouse, "Flour", "10")

		_, err := warehouse.stock.RegisterItem(ctx, RegisterItemRequest{ProductName: "Flour", OpeningStock: dec("99")})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("Expected ErrValidation, got %v", err)
		}
		closing, _, _ := mustItem(t, warehouse, "Flour")
		if !closing.Equal(dec("10")) {
			t.Errorf("Expected the original item to stay, got closing %s", closing)
		}
		if n := ledgerLen(t, warehouse); n != 1 {
			t.Errorf("Expected no ledger entry for the rejected registration, got %d entries", n)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		store := memory.NewStore()
		s := newSite(store, queuelock.NewLocal(0), "Warehouse", DuplicateOverwrite)
		mustRegister(t, s, "Flour", "10")
		mustRegister(t, s, "Sugar", "1")
		mustRegister(t, s, "Flour", "40")

		items, err := s.stock.Items(ctx)
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(items))
		}
		if items[0].ProductName != "Flour" || !items[0].ClosingStock.Equal(dec("40")) {
			t.Errorf("Expected Flour to be replaced in place with 40, got %+v", items[0])
		}
	})
}

func TestStockService_ApplyDeltaFailures(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	tests := []struct {
		name    string
		delta   Delta
		wantErr error
	}{
		{"missing_item", Delta{Item: "Yeast", Day: 1, Qty: dec("1"), Type: model.EntryAddition}, ErrItemNotFound},
		{"day_too_large", Delta{Item: "Flour", Day: 32, Qty: dec("1"), Type: model.EntryAddition}, ErrValidation},
		{"negative_day", Delta{Item: "Flour", Day: -1, Qty: dec("1"), Type: model.EntryAddition}, ErrValidation},
		{"missing_type", Delta{Item: "Flour", Day: 1, Qty: dec("1")}, ErrValidation},
		{"unknown_target", Delta{Item: "Flour", Day: 1, Qty: dec("1"), Type: model.EntryAddition, Target: "price"}, ErrValidation},
		{"too_precise", Delta{Item: "Flour", Day: 1, Qty: dec("0.0001"), Type: model.EntryAddition}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := warehouse.stock.ApplyDelta(ctx, tt.delta)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	closing, _, _ := mustItem(t, warehouse, "Flour")
	if !closing.Equal(dec("10")) {
		t.Errorf("Expected failed deltas to leave stock alone, got %s", closing)
	}
	if n := ledgerLen(t, warehouse); n != 1 {
		t.Errorf("Expected failed deltas to leave the ledger alone, got %d entries", n)
	}
}

func TestStockService_DayZeroTouchesNoSlot(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	item, _, err := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Flour", Day: 0, Qty: dec("5"), Type: model.EntryAddition})
	if err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}
	if !item.TotalReceived.IsZero() || !item.ClosingStock.Equal(dec("10")) {
		t.Errorf("Expected day 0 to leave slots alone, got received %s closing %s", item.TotalReceived, item.ClosingStock)
	}
	if n := ledgerLen(t, warehouse); n != 2 {
		t.Errorf("Expected the event to be logged anyway, got %d entries", n)
	}
}

func TestStockService_SetOpeningStock(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	item, err := warehouse.stock.SetOpeningStock(ctx, "Flour", dec("25"))
	if err != nil {
		t.Fatalf("SetOpeningStock failed: %v", err)
	}
	if !item.ClosingStock.Equal(dec("25")) {
		t.Errorf("Expected closing 25, got %s", item.ClosingStock)
	}

	entries, _ := warehouse.journal.Entries(ctx)
	if entries[0].Type != model.EntryInitialStockSet || !entries[0].Qty.Equal(dec("15")) {
		t.Errorf("Expected an Initial Stock Set entry of 15, got %+v", entries[0])
	}

	if _, err := warehouse.ledger.Undo(ctx, entries[0].ID); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	closing, _, _ := mustItem(t, warehouse, "Flour")
	if !closing.Equal(dec("10")) {
		t.Errorf("Expected undo to restore opening 10, got %s", closing)
	}

	if _, err := warehouse.stock.SetOpeningStock(ctx, "Flour", dec("-1")); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for a negative opening stock, got %v", err)
	}
}

func TestStockService_UpdateRowLogsEachField(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")
	consumption := dec("4")

	item, entries, err := warehouse.stock.UpdateRow(ctx, "Flour", UpdateRowRequest{
		Days:        map[int]decimal.Decimal{3: dec("7"), 9: dec("0")},
		Consumption: &consumption,
	})
	if err != nil {
		t.Fatalf("UpdateRow failed: %v", err)
	}
	if !item.ClosingStock.Equal(dec("13")) {
		t.Errorf("Expected closing 10+7-4=13, got %s", item.ClosingStock)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected one entry per changed field (2), got %d", len(entries))
	}
	if entries[0].Day != 3 || !entries[0].Qty.Equal(dec("7")) || entries[0].Target != model.TargetReceipt {
		t.Errorf("Unexpected slot entry: %+v", entries[0])
	}
	if entries[1].Day != 0 || !entries[1].Qty.Equal(dec("-4")) || entries[1].Target != model.TargetConsumption {
		t.Errorf("Unexpected consumption entry: %+v", entries[1])
	}

	if _, err := warehouse.ledger.Undo(ctx, entries[1].ID); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	closing, received, cons := mustItem(t, warehouse, "Flour")
	if !cons.IsZero() || !received.Equal(dec("7")) || !closing.Equal(dec("17")) {
		t.Errorf("Expected only the consumption edit to be reverted, got closing %s received %s consumption %s", closing, received, cons)
	}

	if _, _, err := warehouse.stock.UpdateRow(ctx, "Flour", UpdateRowRequest{
		Days: map[int]decimal.Decimal{40: dec("1")},
	}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for day 40, got %v", err)
	}
}

func TestStockService_PhysicalCount(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	mustRegister(t, warehouse, "Flour", "10")

	item, err := warehouse.stock.RecordPhysicalCount(ctx, "Flour", decimal.NewNullDecimal(dec("8")))
	if err != nil {
		t.Fatalf("RecordPhysicalCount failed: %v", err)
	}
	if !item.Variance.Equal(dec("-2")) {
		t.Errorf("Expected variance -2, got %s", item.Variance)
	}
	if n := ledgerLen(t, warehouse); n != 1 {
		t.Errorf("Expected a count not to be a ledger event, got %d entries", n)
	}

	item, err = warehouse.stock.RecordPhysicalCount(ctx, "Flour", decimal.NullDecimal{})
	if err != nil {
		t.Fatalf("Clearing the count failed: %v", err)
	}
	if item.PhysicalCount.Valid || !item.Variance.IsZero() {
		t.Errorf("Expected the count and variance to be cleared, got %+v", item)
	}
}

func TestStockService_CategoryFromDirectory(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)
	if _, err := warehouse.directory.Upsert(ctx, UpsertDirectoryRequest{
		ProductName: "Flour", Category: "Dry Goods", Supplier: "Mill Co",
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	mustRegister(t, warehouse, "Flour", "1")
	mustRegister(t, warehouse, "Basil", "1")

	flour, _ := warehouse.stock.Item(ctx, "Flour")
	basil, _ := warehouse.stock.Item(ctx, "Basil")
	if flour.Category != "Dry Goods" {
		t.Errorf("Expected directory category, got %s", flour.Category)
	}
	if basil.Category != model.DefaultCategory {
		t.Errorf("Expected default category, got %s", basil.Category)
	}
}

func TestStockService_RecalculateAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	s := newSite(store, queuelock.NewLocal(0), "Warehouse", DuplicateReject)

	stale := model.Item{ProductName: "Flour", OpeningStock: dec("10"), ClosingStock: dec("999")}
	stale.Receipts[0] = dec("5")
	if err := store.Inventory.Replace(ctx, "Warehouse", []model.Item{stale}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	n, err := s.stock.RecalculateAll(ctx)
	if err != nil {
		t.Fatalf("RecalculateAll failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 item recalculated, got %d", n)
	}
	rows, _ := store.Inventory.Load(ctx, "Warehouse")
	if !rows[0].ClosingStock.Equal(dec("15")) || !rows[0].TotalReceived.Equal(dec("5")) {
		t.Errorf("Expected stored row to be rederived, got closing %s received %s", rows[0].ClosingStock, rows[0].TotalReceived)
	}
}

func TestStockService_QuantityScale(t *testing.T) {
	ctx := context.Background()
	warehouse, _, _ := newPair(t)

	if _, err := warehouse.stock.RegisterItem(ctx, RegisterItemRequest{ProductName: "Saffron", OpeningStock: dec("1.2345")}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected an opening stock with 4 decimals to be rejected, got %v", err)
	}
	mustRegister(t, warehouse, "Saffron", "1.250")

	item, entry, err := warehouse.stock.ApplyDelta(ctx, Delta{Item: "Saffron", Day: 2, Qty: dec("0.125"), Type: model.EntryAddition})
	if err != nil {
		t.Fatalf("Expected 3 decimals to be accepted, got %v", err)
	}
	if !item.ClosingStock.Equal(dec("1.375")) {
		t.Errorf("Expected closing 1.375, got %s", item.ClosingStock)
	}
	if _, err := warehouse.ledger.Undo(ctx, entry.ID); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	closing, _, _ := mustItem(t, warehouse, "Saffron")
	if !closing.Equal(dec("1.25")) {
		t.Errorf("Expected undo to restore 1.25 exactly, got %s", closing)
	}

	if _, err := warehouse.stock.SetOpeningStock(ctx, "Saffron", dec("2.0005")); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected SetOpeningStock to reject 4 decimals, got %v", err)
	}
}
