package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferTransitions(t *testing.T) {
	tests := []struct {
		from, to TransferStatus
		want     bool
	}{
		{TransferStatusPending, TransferStatusInTransit, true},
		{TransferStatusPending, TransferStatusCancelled, true},
		{TransferStatusPending, TransferStatusCompleted, false},
		{TransferStatusInTransit, TransferStatusCompleted, true},
		{TransferStatusInTransit, TransferStatusCancelled, true},
		{TransferStatusInTransit, TransferStatusPending, false},
		{TransferStatusCompleted, TransferStatusCancelled, false},
		{TransferStatusCancelled, TransferStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, TransferStatusCompleted.IsTerminal())
	assert.False(t, TransferStatusInTransit.IsTerminal())
}

func TestManufactureTransitions(t *testing.T) {
	tests := []struct {
		from, to ManufactureStatus
		want     bool
	}{
		{ManufactureStatusPending, ManufactureStatusInProgress, true},
		{ManufactureStatusPending, ManufactureStatusCancelled, true},
		{ManufactureStatusPending, ManufactureStatusCompleted, false},
		{ManufactureStatusInProgress, ManufactureStatusCompleted, true},
		{ManufactureStatusInProgress, ManufactureStatusCancelled, true},
		{ManufactureStatusCompleted, ManufactureStatusInProgress, false},
		{ManufactureStatusCancelled, ManufactureStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReturnTransitions(t *testing.T) {
	assert.True(t, ReturnStatusPending.CanTransitionTo(ReturnStatusApproved))
	assert.True(t, ReturnStatusPending.CanTransitionTo(ReturnStatusRejected))
	assert.False(t, ReturnStatusApproved.CanTransitionTo(ReturnStatusRejected))
	assert.False(t, ReturnStatusRejected.CanTransitionTo(ReturnStatusApproved))
	assert.False(t, ReturnStatusPending.CanTransitionTo(ReturnStatusPending))
}

func TestPaymentMethodsPerCounterparty(t *testing.T) {
	assert.True(t, PaymentMethodMobilePayment.IsValidForCustomer())
	assert.False(t, PaymentMethodMobilePayment.IsValidForSupplier())
	assert.True(t, PaymentMethodCredit.IsValidForSupplier())
	assert.False(t, PaymentMethodCredit.IsValidForCustomer())
}

func TestRolePermissions(t *testing.T) {
	assert.Contains(t, UserRoleAdmin.Permissions(), PermissionManageUsers)
	assert.NotContains(t, UserRoleManager.Permissions(), PermissionManageUsers)
	assert.Equal(t, []string{PermissionManageSales}, UserRoleCashier.Permissions())
	assert.Empty(t, UserRoleUser.Permissions())
	assert.False(t, UserRole("Owner").IsValid())

	perms := UserRoleSalesRep.Permissions()
	perms[0] = "tampered"
	assert.Equal(t, PermissionManageCustomers, UserRoleSalesRep.Permissions()[0])
}
