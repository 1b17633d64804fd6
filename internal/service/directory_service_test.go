package service

import (
	"context"
	"errors"
	"testing"

	"stockledger/internal/model"
	"stockledger/internal/repository/memory"
)

func TestDirectory_Upsert(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewDirectoryService(store.Directory, store.Tx, quietLogger())

	tests := []struct {
		name    string
		req     UpsertDirectoryRequest
		wantErr error
	}{
		{"valid", UpsertDirectoryRequest{ProductName: "Flour", Supplier: "Mill Co", MinStock: dec("20")}, nil},
		{"missing_name", UpsertDirectoryRequest{ProductName: "  "}, ErrValidation},
		{"bad_email", UpsertDirectoryRequest{ProductName: "Sugar", Email: "not-an-email"}, ErrValidation},
		{"negative_min", UpsertDirectoryRequest{ProductName: "Sugar", MinStock: dec("-1")}, ErrValidation},
		{"negative_price", UpsertDirectoryRequest{ProductName: "Sugar", Price: dec("-0.5")}, ErrValidation},
		{"price_cents_only", UpsertDirectoryRequest{ProductName: "Sugar", Price: dec("1.005")}, ErrValidation},
		{"min_stock_scale", UpsertDirectoryRequest{ProductName: "Sugar", MinStock: dec("0.0005")}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(ctx, tt.req)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	entry, err := svc.Lookup(ctx, "flour")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if entry.Category != model.DefaultCategory {
		t.Errorf("Expected default category, got %s", entry.Category)
	}

	if _, err := svc.Upsert(ctx, UpsertDirectoryRequest{ProductName: "FLOUR", Category: "Dry Goods", Supplier: "Mill Co"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 1 || all[0].Category != "Dry Goods" {
		t.Errorf("Expected the entry to be replaced in place, got %+v", all)
	}

	if _, err := svc.Lookup(ctx, "Caviar"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestDirectory_BySupplier(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewDirectoryService(store.Directory, store.Tx, quietLogger())

	for _, req := range []UpsertDirectoryRequest{
		{ProductName: "Sugar", Supplier: "Mill Co"},
		{ProductName: "Milk", Supplier: "Dairy Ltd"},
		{ProductName: "Flour", Supplier: "mill co"},
	} {
		if _, err := svc.Upsert(ctx, req); err != nil {
			t.Fatalf("Upsert %s failed: %v", req.ProductName, err)
		}
	}

	got, err := svc.BySupplier(ctx, "Mill Co")
	if err != nil {
		t.Fatalf("BySupplier failed: %v", err)
	}
	if len(got) != 2 || got[0].ProductName != "Flour" || got[1].ProductName != "Sugar" {
		t.Errorf("Expected Flour and Sugar, got %+v", got)
	}
}

func TestDirectory_LowStock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewDirectoryService(store.Directory, store.Tx, quietLogger())
	svc.Upsert(ctx, UpsertDirectoryRequest{ProductName: "Flour", Supplier: "Mill Co", MinStock: dec("20")})
	svc.Upsert(ctx, UpsertDirectoryRequest{ProductName: "Sugar", MinStock: dec("5")})
	svc.Upsert(ctx, UpsertDirectoryRequest{ProductName: "Salt"})

	items := []model.Item{
		{ProductName: "Flour", ClosingStock: dec("12.5")},
		{ProductName: "Sugar", ClosingStock: dec("5")},
		{ProductName: "Salt", ClosingStock: dec("-3")},
		{ProductName: "Yeast", ClosingStock: dec("0")},
	}
	low, err := svc.LowStock(ctx, items)
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(low) != 1 {
		t.Fatalf("Expected only Flour to be low, got %+v", low)
	}
	if low[0].Supplier != "Mill Co" || !low[0].Shortfall.Equal(dec("7.5")) {
		t.Errorf("Unexpected low stock row: %+v", low[0])
	}
}
