// Package sales computes invoice totals and payment state.
package sales

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// Item is a priced invoice line
type Item struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total is quantity x unit price
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Totals are the money figures of an invoice
type Totals struct {
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	Balance       decimal.Decimal
	PaymentStatus enum.PaymentStatus
}

// Compute prices an invoice: tax is charged on the subtotal before the
// discount, and tax is rounded to cents.
func Compute(items []Item, taxRate, discount, amountPaid decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, fmt.Errorf("at least one item is required")
	}
	if discount.IsNegative() {
		return Totals{}, fmt.Errorf("discount must not be negative")
	}
	if amountPaid.IsNegative() {
		return Totals{}, fmt.Errorf("amount paid must not be negative")
	}

	subtotal := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return Totals{}, fmt.Errorf("item %d: quantity must be positive", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, fmt.Errorf("item %d: unit price must not be negative", i+1)
		}
		subtotal = subtotal.Add(item.Total())
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		return Totals{}, fmt.Errorf("discount exceeds the invoice amount")
	}

	return Totals{
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      discount,
		Total:         total,
		AmountPaid:    amountPaid,
		Balance:       total.Sub(amountPaid),
		PaymentStatus: DerivePaymentStatus(total, amountPaid),
	}, nil
}

// DerivePaymentStatus is paid when the total is covered, partial when
// anything was paid, unpaid otherwise
func DerivePaymentStatus(total, amountPaid decimal.Decimal) enum.PaymentStatus {
	switch {
	case amountPaid.GreaterThanOrEqual(total):
		return enum.PaymentStatusPaid
	case amountPaid.IsPositive():
		return enum.PaymentStatusPartial
	default:
		return enum.PaymentStatusUnpaid
	}
}

// RefundShare is the part of an invoice total that a returned gross amount
// stands for, so tax and discount come back in proportion. Rounded to the
// four places money columns keep.
func RefundShare(gross, subtotal, total decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return gross
	}
	return gross.Mul(total).Div(subtotal).Round(4)
}
