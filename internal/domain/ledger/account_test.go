package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyAndReversePayment(t *testing.T) {
	tests := []struct {
		name   string
		start  Account
		amount string
	}{
		{"partial payment", Account{TotalPurchases: d("45000"), TotalPaid: d("40000"), Balance: d("5000")}, "2000"},
		{"exact payment", Account{TotalPurchases: d("45000"), TotalPaid: d("40000"), Balance: d("5000")}, "5000"},
		{"overpayment goes negative", Account{TotalPurchases: d("100"), TotalPaid: d("0"), Balance: d("100")}, "250.50"},
		{"zero balance account", Account{}, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := tt.start
			amount := d(tt.amount)

			acc.ApplyPayment(amount)
			assert.True(t, acc.TotalPaid.Equal(tt.start.TotalPaid.Add(amount)), "totalPaid grows by amount")
			assert.True(t, acc.Balance.Equal(tt.start.Balance.Sub(amount)), "balance shrinks by amount")
			assert.True(t, acc.TotalPurchases.Equal(tt.start.TotalPurchases))

			acc.ReversePayment(amount)
			assert.True(t, acc.TotalPaid.Equal(tt.start.TotalPaid))
			assert.True(t, acc.Balance.Equal(tt.start.Balance))
		})
	}
}

func TestOverpaymentLeavesNegativeBalance(t *testing.T) {
	acc := Account{TotalPurchases: d("100"), Balance: d("100")}
	acc.ApplyPayment(d("150"))
	assert.Equal(t, "-50", acc.Balance.String())
	assert.True(t, acc.Drift().IsZero())
}

func TestChargesKeepInvariant(t *testing.T) {
	var acc Account
	acc.ApplyCharge(d("1150"))
	acc.ApplyPayment(d("500"))
	acc.ReverseCharge(d("115"))

	assert.Equal(t, "1035", acc.TotalPurchases.String())
	assert.Equal(t, "500", acc.TotalPaid.String())
	assert.Equal(t, "535", acc.Balance.String())
	assert.True(t, acc.Drift().IsZero())
}

func TestReconcile(t *testing.T) {
	acc := Account{TotalPurchases: d("45000"), TotalPaid: d("40000"), Balance: d("7000")}
	assert.Equal(t, "2000", acc.Drift().String())

	removed := acc.Reconcile()
	assert.Equal(t, "2000", removed.String())
	assert.Equal(t, "5000", acc.Balance.String())
	assert.True(t, acc.Drift().IsZero())
}
