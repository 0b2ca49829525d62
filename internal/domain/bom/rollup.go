// Package bom prices bills of materials and checks whether they can be built.
package bom

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one component of a bill of materials
type Line struct {
	ProductID        uuid.UUID
	ProductName      string
	QuantityRequired int64
	UnitCost         decimal.Decimal
	AvailableStock   int64
}

// NewLine validates a component before it is added to a BOM
func NewLine(productID uuid.UUID, name string, quantityRequired int64, unitCost decimal.Decimal) (Line, error) {
	if productID == uuid.Nil {
		return Line{}, fmt.Errorf("component product is required")
	}
	if quantityRequired <= 0 {
		return Line{}, fmt.Errorf("quantity required must be positive, got %d", quantityRequired)
	}
	if unitCost.IsNegative() {
		return Line{}, fmt.Errorf("unit cost must not be negative, got %s", unitCost)
	}
	return Line{
		ProductID:        productID,
		ProductName:      name,
		QuantityRequired: quantityRequired,
		UnitCost:         unitCost,
	}, nil
}

// Cost is unitCost x quantityRequired for one finished unit
func (l Line) Cost() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(l.QuantityRequired))
}

// RollUp is the cost of one finished unit
func RollUp(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Cost())
	}
	return total
}

// Shortage describes a component that cannot cover a production run
type Shortage struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Required    int64     `json:"required"`
	Available   int64     `json:"available"`
}

// Shortages lists every component whose available stock is below
// quantityRequired x qty
func Shortages(lines []Line, qty int64) []Shortage {
	var out []Shortage
	for _, l := range lines {
		required := l.QuantityRequired * qty
		if l.AvailableStock < required {
			out = append(out, Shortage{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Required:    required,
				Available:   l.AvailableStock,
			})
		}
	}
	return out
}

// CanProduce reports whether every component covers qty finished units
func CanProduce(lines []Line, qty int64) bool {
	return len(Shortages(lines, qty)) == 0
}

// Usage is the frozen consumption of one component for a production run
type Usage struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantityUsed int64
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
}

// Consumption freezes what a run of qty units uses of each component
func Consumption(lines []Line, qty int64) []Usage {
	out := make([]Usage, 0, len(lines))
	for _, l := range lines {
		used := l.QuantityRequired * qty
		out = append(out, Usage{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			QuantityUsed: used,
			UnitCost:     l.UnitCost,
			TotalCost:    l.UnitCost.Mul(decimal.NewFromInt(used)),
		})
	}
	return out
}
