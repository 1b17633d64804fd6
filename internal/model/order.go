package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus of a requisition line.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusInTransit OrderStatus = "In Transit"
	OrderStatusCompleted OrderStatus = "Completed"
)

// DateLayout is the format of OrderLine.Date.
const DateLayout = "2006-01-02"

func (s OrderStatus) rank() int {
	switch s {
	case OrderStatusPending:
		return 0
	case OrderStatusInTransit:
		return 1
	case OrderStatusCompleted:
		return 2
	}
	return -1
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// CanAdvanceTo allows exactly one step forward: Pending -> In Transit -> Completed.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return s.Valid() && next.Valid() && next.rank() == s.rank()+1
}

// OrderLine is one row of the shared requisition queue. Lines created by
// the same submission share OrderID.
type OrderLine struct {
	LineID    string          `gorm:"type:varchar(36);primaryKey" json:"line_id"`
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	Date      string          `gorm:"type:varchar(10);not null;index" json:"date"`
	From      string          `gorm:"column:from_location;type:varchar(100);not null;index" json:"from"`
	Item      string          `gorm:"type:varchar(255);not null" json:"item"`
	Qty       decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"qty"`
	Status    OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	FollowUp  bool            `gorm:"not null;default:false" json:"follow_up"`
	Seq       int64           `gorm:"not null;default:0;index" json:"-"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}

// FindLine returns the index of the line with the given id or -1.
func FindLine(lines []OrderLine, lineID string) int {
	for idx := range lines {
		if lines[idx].LineID == lineID {
			return idx
		}
	}
	return -1
}
