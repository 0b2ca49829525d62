// Package ledger keeps the running monetary position of a counterparty.
package ledger

import "github.com/shopspring/decimal"

// Account is the aggregate position of a customer or supplier.
// Balance == TotalPurchases - TotalPaid holds as long as every change goes
// through the methods below; Drift reports how far a record is from it.
type Account struct {
	TotalPurchases decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_purchases"`
	TotalPaid      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_paid"`
	Balance        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`
}

// ApplyPayment records money received from (or paid to) the counterparty.
// Overpayment is allowed and leaves a negative balance.
func (a *Account) ApplyPayment(amount decimal.Decimal) {
	a.TotalPaid = a.TotalPaid.Add(amount)
	a.Balance = a.Balance.Sub(amount)
}

// ReversePayment is the exact inverse of ApplyPayment
func (a *Account) ReversePayment(amount decimal.Decimal) {
	a.TotalPaid = a.TotalPaid.Sub(amount)
	a.Balance = a.Balance.Add(amount)
}

// ApplyCharge records goods sold to (or bought from) the counterparty
func (a *Account) ApplyCharge(amount decimal.Decimal) {
	a.TotalPurchases = a.TotalPurchases.Add(amount)
	a.Balance = a.Balance.Add(amount)
}

// ReverseCharge is the exact inverse of ApplyCharge
func (a *Account) ReverseCharge(amount decimal.Decimal) {
	a.TotalPurchases = a.TotalPurchases.Sub(amount)
	a.Balance = a.Balance.Sub(amount)
}

// Drift is Balance minus what the totals say it should be
func (a Account) Drift() decimal.Decimal {
	return a.Balance.Sub(a.TotalPurchases.Sub(a.TotalPaid))
}

// Reconcile re-derives Balance from the totals and returns the drift that
// was removed
func (a *Account) Reconcile() decimal.Decimal {
	drift := a.Drift()
	a.Balance = a.TotalPurchases.Sub(a.TotalPaid)
	return drift
}
