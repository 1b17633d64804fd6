package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry types
const (
	EntryAddition        = "Addition"
	EntryNewItem         = "New Item Added"
	EntryStockAccepted   = "Stock Accepted"
	EntryInitialStockSet = "Initial Stock Set"
	EntryTableUpdate     = "Table Update"

	dispatchPrefix = "Partial Dispatch to "
	undoPrefix     = "Undo("
)

// DispatchEntryType tags a supplier-side debit for the given outlet.
func DispatchEntryType(outlet string) string {
	return dispatchPrefix + outlet
}

// UndoEntryType tags the compensating entry of the original id.
func UndoEntryType(originalID string) string {
	return undoPrefix + originalID + ")"
}

// IsUndoEntryType reports whether t was produced by UndoEntryType.
func IsUndoEntryType(t string) bool {
	return strings.HasPrefix(t, undoPrefix) && strings.HasSuffix(t, ")")
}

// EntryTarget names the raw input a ledger delta was applied to.
type EntryTarget string

const (
	TargetReceipt     EntryTarget = "receipt"
	TargetConsumption EntryTarget = "consumption"
	TargetOpening     EntryTarget = "opening"
)

// Valid reports whether t is a known target.
func (t EntryTarget) Valid() bool {
	switch t {
	case TargetReceipt, TargetConsumption, TargetOpening:
		return true
	}
	return false
}

// LedgerEntry records one stock-affecting event. Qty is the signed change of
// Closing Stock the event caused.
type LedgerEntry struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Location  string          `gorm:"type:varchar(100);primaryKey" json:"location"`
	Timestamp time.Time       `gorm:"index" json:"timestamp"`
	Item      string          `gorm:"type:varchar(255);index" json:"item"`
	Day       int             `gorm:"not null;default:0" json:"day"`
	Qty       decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"qty"`
	Type      string          `gorm:"type:varchar(255);not null" json:"type"`
	Target    EntryTarget     `gorm:"type:varchar(20);not null;default:'receipt'" json:"target"`
	Reverses  string          `gorm:"type:varchar(36)" json:"reverses,omitempty"`
	Undone    bool            `gorm:"not null;default:false" json:"undone"`
	Seq       int64           `gorm:"not null;default:0;index" json:"-"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// IsCompensating reports whether the entry reverses another one.
func (e LedgerEntry) IsCompensating() bool {
	return e.Reverses != ""
}

// Undoable reports whether undo may still act on the entry.
func (e LedgerEntry) Undoable() bool {
	return !e.Undone && !e.IsCompensating()
}
