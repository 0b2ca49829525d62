package enum

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusCompleted         SaleStatus = "completed"
	SaleStatusPending           SaleStatus = "pending"
	SaleStatusReturned          SaleStatus = "returned"
	SaleStatusPartiallyReturned SaleStatus = "partially-returned"
)

func (s SaleStatus) String() string {
	return string(s)
}

func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusReturned, SaleStatusPartiallyReturned:
		return true
	}
	return false
}

// IsReturnable reports whether a return may be raised against a sale in this state
func (s SaleStatus) IsReturnable() bool {
	return s == SaleStatusCompleted || s == SaleStatusPartiallyReturned
}

// PaymentStatus is derived from a sale's total and the amount paid against it
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// RefundMethod is how a customer is refunded for a return
type RefundMethod string

const (
	RefundMethodCash         RefundMethod = "cash"
	RefundMethodBankTransfer RefundMethod = "bank-transfer"
	RefundMethodCreditNote   RefundMethod = "credit-note"
)

func (m RefundMethod) String() string {
	return string(m)
}

func (m RefundMethod) IsValid() bool {
	switch m {
	case RefundMethodCash, RefundMethodBankTransfer, RefundMethodCreditNote:
		return true
	}
	return false
}
