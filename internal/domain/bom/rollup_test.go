package bom

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, name string, qty int64, cost string, available int64) Line {
	t.Helper()
	l, err := NewLine(uuid.New(), name, qty, decimal.RequireFromString(cost))
	require.NoError(t, err)
	l.AvailableStock = available
	return l
}

func TestRollUpGamingPC(t *testing.T) {
	lines := []Line{
		line(t, "Laptop Pro 15", 1, "280000", 45),
		line(t, "Wireless Mouse", 1, "1000", 120),
		line(t, "USB-C Cable", 1, "1500", 200),
		line(t, "Laptop Stand", 1, "800", 30),
	}
	assert.Equal(t, "283300", RollUp(lines).String())
}

func TestRollUpRecomputesOnEdit(t *testing.T) {
	lines := []Line{line(t, "Panel", 4, "12.50", 0)}
	assert.Equal(t, "50", RollUp(lines).String())

	lines = append(lines, line(t, "Screw", 16, "0.05", 0))
	assert.Equal(t, "50.8", RollUp(lines).String())

	lines[0].QuantityRequired = 2
	assert.Equal(t, "25.8", RollUp(lines).String())

	lines = lines[1:]
	assert.Equal(t, "0.8", RollUp(lines).String())

	assert.True(t, RollUp(nil).IsZero())
}

func TestNewLineValidation(t *testing.T) {
	_, err := NewLine(uuid.Nil, "x", 1, decimal.Zero)
	assert.Error(t, err)
	_, err = NewLine(uuid.New(), "x", 0, decimal.Zero)
	assert.EqualError(t, err, "quantity required must be positive, got 0")
	_, err = NewLine(uuid.New(), "x", 1, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestCanProduce(t *testing.T) {
	lines := []Line{
		line(t, "Laptop Pro 15", 1, "280000", 45),
		line(t, "Laptop Stand", 2, "800", 30),
	}

	assert.True(t, CanProduce(lines, 15))
	assert.False(t, CanProduce(lines, 16))

	shortages := Shortages(lines, 16)
	require.Len(t, shortages, 1)
	assert.Equal(t, "Laptop Stand", shortages[0].ProductName)
	assert.Equal(t, int64(32), shortages[0].Required)
	assert.Equal(t, int64(30), shortages[0].Available)
}

func TestConsumption(t *testing.T) {
	lines := []Line{line(t, "Wireless Mouse", 2, "1000", 0)}
	usage := Consumption(lines, 5)
	require.Len(t, usage, 1)
	assert.Equal(t, int64(10), usage[0].QuantityUsed)
	assert.Equal(t, "10000", usage[0].TotalCost.String())
}
