package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DaysInMonth is the number of daily receipt slots carried by every item.
const DaysInMonth = 31

const (
	DefaultCategory = "General"
	DefaultUOM      = "pcs"
)

// DaySlots holds the receipts of one item, index 0 is day 1.
type DaySlots [DaysInMonth]decimal.Decimal

// Sum returns the total of all slots.
func (s DaySlots) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s {
		total = total.Add(v)
	}
	return total
}

// Day returns the slot for a day of month (1-31).
func (s DaySlots) Day(day int) decimal.Decimal {
	if day < 1 || day > DaysInMonth {
		return decimal.Zero
	}
	return s[day-1]
}

// Value stores the slots as a JSON array so a single column can hold them.
func (s DaySlots) Value() (driver.Value, error) {
	b, err := json.Marshal([DaysInMonth]decimal.Decimal(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads slots written by Value. Missing or null cells stay zero.
func (s *DaySlots) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = DaySlots{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("day slots: unsupported type %T", src)
	}

	var cells []decimal.NullDecimal
	if err := json.Unmarshal(raw, &cells); err != nil {
		return fmt.Errorf("day slots: %w", err)
	}
	if len(cells) > DaysInMonth {
		return errors.New("day slots: more than 31 days")
	}
	*s = DaySlots{}
	for i, c := range cells {
		if c.Valid {
			s[i] = c.Decimal
		}
	}
	return nil
}

// Item is one row of a location's inventory table.
type Item struct {
	ID            uint                `gorm:"primaryKey" json:"-"`
	Location      string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_items_location_name" json:"location"`
	ProductName   string              `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_location_name" json:"product_name"`
	Category      string              `gorm:"type:varchar(100);default:'General'" json:"category"`
	UOM           string              `gorm:"type:varchar(30);default:'pcs'" json:"uom"`
	OpeningStock  decimal.Decimal     `gorm:"type:numeric(14,3);not null;default:0" json:"opening_stock"`
	Receipts      DaySlots            `gorm:"type:jsonb" json:"receipts"`
	TotalReceived decimal.Decimal     `gorm:"type:numeric(14,3);not null;default:0" json:"total_received"`
	Consumption   decimal.Decimal     `gorm:"type:numeric(14,3);not null;default:0" json:"consumption"`
	ClosingStock  decimal.Decimal     `gorm:"type:numeric(14,3);not null;default:0" json:"closing_stock"`
	PhysicalCount decimal.NullDecimal `gorm:"type:numeric(14,3)" json:"physical_count"`
	Variance      decimal.Decimal     `gorm:"type:numeric(14,3);not null;default:0" json:"variance"`
	Position      int                 `gorm:"not null;default:0" json:"-"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// NewItem builds a freshly registered item with empty receipts.
func NewItem(location, name, uom, category string, opening decimal.Decimal) Item {
	if uom == "" {
		uom = DefaultUOM
	}
	if category == "" {
		category = DefaultCategory
	}
	item := Item{
		Location:     location,
		ProductName:  name,
		Category:     category,
		UOM:          uom,
		OpeningStock: opening,
	}
	item.Recalc()
	return item
}

// Recalc re-derives Total Received, Closing Stock and Variance from the raw inputs.
func (i *Item) Recalc() {
	i.TotalReceived = i.Receipts.Sum()
	i.ClosingStock = i.OpeningStock.Add(i.TotalReceived).Sub(i.Consumption)
	if i.PhysicalCount.Valid {
		i.Variance = i.PhysicalCount.Decimal.Sub(i.ClosingStock)
	} else {
		i.Variance = decimal.Zero
	}
}

// FindItem returns the index of the named item or -1.
func FindItem(items []Item, name string) int {
	for idx := range items {
		if items[idx].ProductName == name {
			return idx
		}
	}
	return -1
}
