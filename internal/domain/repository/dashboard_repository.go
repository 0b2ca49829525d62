package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyTotals sums the embedded ledger accounts of customers or suppliers
type PartyTotals struct {
	Count          int64
	TotalPurchases decimal.Decimal
	TotalPaid      decimal.Decimal
	Balance        decimal.Decimal
}

// SalesTotals sums sale invoices
type SalesTotals struct {
	Count          int64
	Total          decimal.Decimal
	AmountPaid     decimal.Decimal
	AmountRefunded decimal.Decimal
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// DashboardRepository defines the aggregation queries behind the dashboard
type DashboardRepository interface {
	CustomerTotals(ctx context.Context) (PartyTotals, error)
	SupplierTotals(ctx context.Context) (PartyTotals, error)
	SalesTotals(ctx context.Context) (SalesTotals, error)
	// StockCountsByStatus counts stock items per derived status
	StockCountsByStatus(ctx context.Context) (map[string]int64, error)
	// InventoryValue is Σ quantity × product cost over all stock items
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	ManufactureCountsByStatus(ctx context.Context) (map[string]int64, error)
	CountPendingTransfers(ctx context.Context) (int64, error)
	CountPendingReturns(ctx context.Context) (int64, error)
	// TopProducts returns the best selling products by revenue
	TopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
}
