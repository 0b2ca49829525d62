package enum

// PaymentMethod is how money changed hands. Customers and suppliers accept
// different subsets, see IsValidForCustomer and IsValidForSupplier.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodBankTransfer  PaymentMethod = "bank-transfer"
	PaymentMethodCheque        PaymentMethod = "cheque"
	PaymentMethodCreditCard    PaymentMethod = "credit-card"
	PaymentMethodMobilePayment PaymentMethod = "mobile-payment"
	PaymentMethodCredit        PaymentMethod = "credit"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValidForCustomer() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodCreditCard, PaymentMethodMobilePayment:
		return true
	}
	return false
}

func (m PaymentMethod) IsValidForSupplier() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodCredit:
		return true
	}
	return false
}

// LedgerEntryType labels a customer ledger line
type LedgerEntryType string

const (
	LedgerEntryTypeSale    LedgerEntryType = "sale"
	LedgerEntryTypePayment LedgerEntryType = "payment"
	LedgerEntryTypeCredit  LedgerEntryType = "credit"
	LedgerEntryTypeDebit   LedgerEntryType = "debit"
)

func (t LedgerEntryType) String() string {
	return string(t)
}
