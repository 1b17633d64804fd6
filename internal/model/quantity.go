package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity reads a numeric cell. Blank cells are zero; anything that does
// not parse is also zero and reported through coerced.
func ParseQuantity(raw string) (qty decimal.Decimal, coerced bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
