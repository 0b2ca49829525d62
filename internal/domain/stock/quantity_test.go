package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

func TestApplyAdjustment(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		typ     enum.AdjustmentType
		qty     int64
		want    int64
		wantErr bool
	}{
		{name: "add", current: 45, typ: enum.AdjustmentTypeAdd, qty: 5, want: 50},
		{name: "remove", current: 45, typ: enum.AdjustmentTypeRemove, qty: 5, want: 40},
		{name: "remove exactly all", current: 5, typ: enum.AdjustmentTypeRemove, qty: 5, want: 0},
		{name: "remove clamps when previous < amount", current: 3, typ: enum.AdjustmentTypeRemove, qty: 10, want: 0},
		{name: "remove from empty", current: 0, typ: enum.AdjustmentTypeRemove, qty: 1, want: 0},
		{name: "set overrides", current: 45, typ: enum.AdjustmentTypeSet, qty: 12, want: 12},
		{name: "set to zero", current: 45, typ: enum.AdjustmentTypeSet, qty: 0, want: 0},
		{name: "negative quantity", current: 45, typ: enum.AdjustmentTypeAdd, qty: -1, wantErr: true},
		{name: "unknown type", current: 45, typ: enum.AdjustmentType("scale"), qty: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyAdjustment(tt.current, tt.typ, tt.qty)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.current, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveIsMaxOfZero(t *testing.T) {
	for previous := int64(0); previous <= 20; previous++ {
		for amount := int64(0); amount <= 20; amount++ {
			got, err := ApplyAdjustment(previous, enum.AdjustmentTypeRemove, amount)
			require.NoError(t, err)
			assert.Equal(t, max(0, previous-amount), got, "previous=%d amount=%d", previous, amount)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		minStock int64
		want     enum.StockStatus
	}{
		{"zero is out of stock", 0, 10, enum.StockStatusOutOfStock},
		{"zero with zero minimum", 0, 0, enum.StockStatusOutOfStock},
		{"one above zero", 1, 10, enum.StockStatusLowStock},
		{"equal to minimum is low", 10, 10, enum.StockStatusLowStock},
		{"one above minimum", 11, 10, enum.StockStatusInStock},
		{"positive with zero minimum", 1, 0, enum.StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.quantity, tt.minStock))
		})
	}
}

func TestWithdraw(t *testing.T) {
	remaining, ok := Withdraw(10, 4)
	assert.True(t, ok)
	assert.Equal(t, int64(6), remaining)

	remaining, ok = Withdraw(3, 4)
	assert.False(t, ok)
	assert.Equal(t, int64(3), remaining)
}
