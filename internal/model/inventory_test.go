package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestItem_RecalcDerivesTotals(t *testing.T) {
	item := NewItem("Warehouse", "Flour", "", "", d("10"))
	item.Receipts[4] = d("20")
	item.Receipts[30] = d("2.5")
	item.Consumption = d("7")
	item.Recalc()

	if !item.TotalReceived.Equal(d("22.5")) {
		t.Errorf("Expected total received 22.5, got %s", item.TotalReceived)
	}
	if !item.ClosingStock.Equal(d("25.5")) {
		t.Errorf("Expected closing stock 25.5, got %s", item.ClosingStock)
	}
	if !item.Variance.IsZero() {
		t.Errorf("Expected zero variance without a physical count, got %s", item.Variance)
	}

	item.PhysicalCount = decimal.NewNullDecimal(d("24"))
	item.Recalc()
	if !item.Variance.Equal(d("-1.5")) {
		t.Errorf("Expected variance -1.5, got %s", item.Variance)
	}
}

func TestNewItem_Defaults(t *testing.T) {
	item := NewItem("Outlet A", "Salt", "", "", d("4"))
	if item.UOM != DefaultUOM {
		t.Errorf("Expected UOM %s, got %s", DefaultUOM, item.UOM)
	}
	if item.Category != DefaultCategory {
		t.Errorf("Expected category %s, got %s", DefaultCategory, item.Category)
	}
	if !item.ClosingStock.Equal(d("4")) {
		t.Errorf("Expected closing stock equal to opening, got %s", item.ClosingStock)
	}
}

func TestDaySlots_Day(t *testing.T) {
	var slots DaySlots
	slots[0] = d("1")
	slots[30] = d("31")

	if !slots.Day(1).Equal(d("1")) || !slots.Day(31).Equal(d("31")) {
		t.Errorf("Expected day 1 and 31 to map to first and last slot")
	}
	if !slots.Day(0).IsZero() || !slots.Day(32).IsZero() {
		t.Errorf("Expected out of range days to read as zero")
	}
}

func TestDaySlots_ScanToleratesNullsAndShortArrays(t *testing.T) {
	var slots DaySlots
	if err := slots.Scan([]byte(`["1.5", null, 3]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !slots.Day(1).Equal(d("1.5")) || !slots.Day(2).IsZero() || !slots.Day(3).Equal(d("3")) {
		t.Errorf("Unexpected slots after scan: %v", slots[:3])
	}
	if !slots.Sum().Equal(d("4.5")) {
		t.Errorf("Expected sum 4.5, got %s", slots.Sum())
	}

	if err := slots.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !slots.Sum().IsZero() {
		t.Errorf("Expected nil to reset the slots")
	}

	if err := slots.Scan(42); err == nil {
		t.Errorf("Expected an error for an unsupported source type")
	}
}

func TestDaySlots_ValueIsReadBackByScan(t *testing.T) {
	var slots DaySlots
	slots[9] = d("12.25")

	v, err := slots.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	var back DaySlots
	if err := back.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !back.Day(10).Equal(d("12.25")) {
		t.Errorf("Expected day 10 to be 12.25, got %s", back.Day(10))
	}
}

func TestFindItem(t *testing.T) {
	items := []Item{{ProductName: "Flour"}, {ProductName: "Sugar"}}
	if idx := FindItem(items, "Sugar"); idx != 1 {
		t.Errorf("Expected index 1, got %d", idx)
	}
	if idx := FindItem(items, "sugar"); idx != -1 {
		t.Errorf("Expected names to match exactly, got %d", idx)
	}
}
