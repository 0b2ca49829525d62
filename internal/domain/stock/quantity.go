// Package stock holds the quantity rules shared by adjustments, transfers,
// sales and production.
package stock

import (
	"fmt"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// ApplyAdjustment returns the quantity after a manual adjustment.
// Removing more than is on hand clamps to zero instead of failing.
func ApplyAdjustment(current int64, adjustment enum.AdjustmentType, qty int64) (int64, error) {
	if qty < 0 {
		return current, fmt.Errorf("adjustment quantity must not be negative, got %d", qty)
	}

	switch adjustment {
	case enum.AdjustmentTypeAdd:
		return current + qty, nil
	case enum.AdjustmentTypeRemove:
		if qty > current {
			return 0, nil
		}
		return current - qty, nil
	case enum.AdjustmentTypeSet:
		return qty, nil
	}
	return current, fmt.Errorf("unknown adjustment type %q", adjustment)
}

// DeriveStatus classifies quantity against the item's minimum.
// Zero is checked first, so an item with minStock 0 and no stock is out of stock.
func DeriveStatus(quantity, minStock int64) enum.StockStatus {
	switch {
	case quantity <= 0:
		return enum.StockStatusOutOfStock
	case quantity <= minStock:
		return enum.StockStatusLowStock
	default:
		return enum.StockStatusInStock
	}
}

// Withdraw takes qty out of current for movements that must not clamp
// (transfers, sales, production). ok is false when current is short.
func Withdraw(current, qty int64) (remaining int64, ok bool) {
	if qty > current {
		return current, false
	}
	return current - qty, true
}
