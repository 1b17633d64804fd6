package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DirectoryEntry is the warehouse's reference record for a product and its supplier.
type DirectoryEntry struct {
	ProductName string          `gorm:"type:varchar(255);primaryKey" json:"product_name"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Supplier    string          `gorm:"type:varchar(255);index" json:"supplier"`
	Contact     string          `gorm:"type:varchar(100)" json:"contact"`
	Email       string          `gorm:"type:varchar(255)" json:"email"`
	MinStock    decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0" json:"min_stock"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (DirectoryEntry) TableName() string {
	return "directory_entries"
}
